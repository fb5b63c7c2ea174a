// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and decoded float PCM buffers
package audio

import "time"

// Speech payloads arrive as raw signed 16-bit little-endian PCM,
// mono, at 24 kHz. Anything else is out of contract.
const (
	SpeechSampleRate = 24000
	SpeechChannels   = 1
	SpeechBitDepth   = 16
)

// Format describes the layout of a raw PCM payload.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// SpeechFormat returns the wire format used for synthesized speech.
func SpeechFormat() Format {
	return Format{
		SampleRate: SpeechSampleRate,
		Channels:   SpeechChannels,
		BitDepth:   SpeechBitDepth,
	}
}

// Buffer holds decoded PCM as normalized float samples in [-1, 1],
// one slice per channel. All channel slices have equal length.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return len(b.Data)
}

// Frames returns the number of frames per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Channel returns the sample slice for channel c.
func (b *Buffer) Channel(c int) []float32 {
	return b.Data[c]
}

// Duration returns the wall-clock length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// SampleToFloat converts a signed 16-bit sample to a normalized float.
// The division by 32768 is exact in float32, so decoding is bit-stable.
func SampleToFloat(sample int16) float32 {
	return float32(sample) / 32768.0
}

// SampleFromFloat converts a normalized float back to a signed 16-bit
// sample, clamping values outside [-1, 1).
func SampleFromFloat(sample float32) int16 {
	scaled := sample * 32768.0
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(scaled)
}
