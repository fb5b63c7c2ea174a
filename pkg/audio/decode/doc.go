// ABOUTME: Audio decoder package for synthesized speech payloads
// ABOUTME: Decodes base64 s16le PCM into normalized float buffers
// Package decode converts base64-encoded raw PCM payloads into
// normalized float audio buffers.
//
// The only accepted payload layout is the speech wire format: raw
// signed 16-bit little-endian PCM. Malformed base64 is reported as a
// *DecodeError; an empty payload decodes to a valid zero-frame buffer.
//
// Example:
//
//	buf, err := decode.Base64PCM(payload, audio.SpeechFormat())
package decode
