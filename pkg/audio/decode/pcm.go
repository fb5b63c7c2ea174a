// ABOUTME: PCM speech payload decoder
// ABOUTME: Decodes base64 s16le bytes to per-channel float32 samples
package decode

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
)

// DecodeError reports a payload that could not be decoded. No partial
// buffer is ever returned alongside one.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Base64PCM decodes a base64-encoded raw PCM payload into a normalized
// float buffer. The payload must match format: signed 16-bit
// little-endian samples, interleaved by channel.
//
// Decoding is deterministic: the same payload always produces
// bit-identical output. A trailing odd byte is dropped, and an empty
// payload yields a zero-frame buffer rather than an error.
func Base64PCM(payload string, format audio.Format) (*audio.Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}
	return PCM(data, format)
}

// PCM decodes raw s16le bytes into a normalized float buffer. Exposed
// for callers that already hold decoded bytes (the SDK hands inline
// blobs over pre-decoded).
func PCM(data []byte, format audio.Format) (*audio.Buffer, error) {
	if format.BitDepth != 16 {
		return nil, &DecodeError{Reason: fmt.Sprintf("unsupported bit depth: %d (supported: 16)", format.BitDepth)}
	}
	if format.Channels < 1 {
		return nil, &DecodeError{Reason: fmt.Sprintf("invalid channel count: %d", format.Channels)}
	}

	// Incomplete trailing bytes never form a sample or frame.
	numSamples := len(data) / 2
	frames := numSamples / format.Channels

	channels := make([][]float32, format.Channels)
	for c := range channels {
		channels[c] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < format.Channels; c++ {
			off := (i*format.Channels + c) * 2
			sample := int16(binary.LittleEndian.Uint16(data[off:]))
			channels[c][i] = audio.SampleToFloat(sample)
		}
	}

	return &audio.Buffer{
		SampleRate: format.SampleRate,
		Data:       channels,
	}, nil
}
