// ABOUTME: Tests for the oto sink helpers
// ABOUTME: Covers volume scaling without touching audio hardware
package output

import (
	"encoding/binary"
	"testing"
)

func TestGetVolumeMultiplier(t *testing.T) {
	if got := getVolumeMultiplier(100, false); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
	if got := getVolumeMultiplier(50, false); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := getVolumeMultiplier(100, true); got != 0.0 {
		t.Errorf("expected 0.0 when muted, got %v", got)
	}
}

func TestApplyVolumeFullPassThrough(t *testing.T) {
	pcm := []byte{0x00, 0x40, 0xFF, 0x7F}
	out := applyVolume(pcm, 100, false)

	for i := range pcm {
		if out[i] != pcm[i] {
			t.Fatalf("byte %d changed at full volume: %x != %x", i, out[i], pcm[i])
		}
	}
}

func TestApplyVolumeHalf(t *testing.T) {
	pcm := make([]byte, 2)
	binary.LittleEndian.PutUint16(pcm, uint16(int16(16384)))

	out := applyVolume(pcm, 50, false)
	if got := int16(binary.LittleEndian.Uint16(out)); got != 8192 {
		t.Errorf("expected 8192 at half volume, got %d", got)
	}
}

func TestApplyVolumeMuted(t *testing.T) {
	pcm := []byte{0x00, 0x40, 0x00, 0x80}
	out := applyVolume(pcm, 100, true)

	for i := 0; i+1 < len(out); i += 2 {
		if got := int16(binary.LittleEndian.Uint16(out[i:])); got != 0 {
			t.Errorf("sample %d not silenced: %d", i/2, got)
		}
	}
}

func TestStartBeforeOpenFails(t *testing.T) {
	sink := NewOto()
	if _, err := sink.Start([]byte{0x00, 0x00}, nil); err == nil {
		t.Fatal("expected error when starting on an unopened sink")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	sink := NewOto()

	sink.SetVolume(150)
	if sink.volume != 100 {
		t.Errorf("expected clamp to 100, got %d", sink.volume)
	}

	sink.SetVolume(-10)
	if sink.volume != 0 {
		t.Errorf("expected clamp to 0, got %d", sink.volume)
	}
}
