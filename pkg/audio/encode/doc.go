// ABOUTME: Audio encoder package for exporting decoded buffers
// ABOUTME: Re-quantizes float buffers to s16le and wraps them in WAV
// Package encode converts normalized float audio buffers back into raw
// interleaved s16le PCM and into playable WAV files.
//
// Re-quantization inverts the decoder's scaling exactly, so a
// decode → encode round trip reproduces the original bytes for any
// in-range payload.
package encode
