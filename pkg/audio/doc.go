// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample conversion functions
// Package audio provides fundamental audio types for the cadenza library.
//
// This package defines the core types used throughout the repo:
//   - Format: Describes a raw PCM payload layout (sample rate, channels, bit depth)
//   - Buffer: Decoded PCM held as normalized float32 samples, one slice per channel
//
// It also provides the int16 ↔ float32 sample conversions used by the
// decoder and the playback sink.
//
// Example:
//
//	format := audio.SpeechFormat() // s16le, mono, 24 kHz
//	f := audio.SampleToFloat(16384) // 0.5
package audio
