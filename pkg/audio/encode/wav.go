// ABOUTME: WAV container writer
// ABOUTME: Encodes float buffers as interleaved s16le PCM with a RIFF header
package encode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
)

// PCM re-quantizes a float buffer to raw interleaved s16le bytes.
func PCM(buf *audio.Buffer) []byte {
	frames := buf.Frames()
	channels := buf.Channels()

	out := make([]byte, frames*channels*2)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			sample := audio.SampleFromFloat(buf.Channel(c)[i])
			off := (i*channels + c) * 2
			binary.LittleEndian.PutUint16(out[off:], uint16(sample))
		}
	}
	return out
}

// WAV writes buf to w as a 16-bit PCM WAV file.
func WAV(w io.Writer, buf *audio.Buffer) error {
	if buf.Channels() == 0 {
		return fmt.Errorf("encode: buffer has no channels")
	}
	if buf.SampleRate <= 0 {
		return fmt.Errorf("encode: invalid sample rate: %d", buf.SampleRate)
	}

	data := PCM(buf)
	channels := uint16(buf.Channels())
	sampleRate := uint32(buf.SampleRate)
	blockAlign := channels * 2
	byteRate := sampleRate * uint32(blockAlign)

	var header bytes.Buffer
	header.WriteString("RIFF")
	binary.Write(&header, binary.LittleEndian, uint32(36+len(data)))
	header.WriteString("WAVE")
	header.WriteString("fmt ")
	binary.Write(&header, binary.LittleEndian, uint32(16))
	binary.Write(&header, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&header, binary.LittleEndian, channels)
	binary.Write(&header, binary.LittleEndian, sampleRate)
	binary.Write(&header, binary.LittleEndian, byteRate)
	binary.Write(&header, binary.LittleEndian, blockAlign)
	binary.Write(&header, binary.LittleEndian, uint16(16)) // bits per sample
	header.WriteString("data")
	binary.Write(&header, binary.LittleEndian, uint32(len(data)))

	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("encode: write wav header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encode: write wav data: %w", err)
	}
	return nil
}
