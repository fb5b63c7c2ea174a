// ABOUTME: Tests for app helpers and one-shot speech flows
// ABOUTME: Uses fakes for the studio client and playback sink
package app

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cadenza-Studio/cadenza-go/internal/config"
	"github.com/Cadenza-Studio/cadenza-go/internal/imagestore"
	"github.com/Cadenza-Studio/cadenza-go/internal/live"
	"github.com/Cadenza-Studio/cadenza-go/internal/studio"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/output"
	"github.com/Cadenza-Studio/cadenza-go/pkg/playback"
)

type fakeGen struct {
	payload string
	image   *studio.ImageResult
	err     error
}

func (f *fakeGen) Synthesize(ctx context.Context, text, voice string) (string, error) {
	return f.payload, f.err
}

func (f *fakeGen) EditImage(ctx context.Context, instruction string, image []byte, mimeType string) (*studio.ImageResult, error) {
	return f.image, f.err
}

// noopSink satisfies output.Sink without a device; voices complete
// immediately so one-shot playback returns.
type noopSink struct{}

type noopVoice struct{}

func (noopVoice) Stop() {}

func (noopSink) Open(sampleRate, channels int) error { return nil }

func (noopSink) Start(pcm []byte, onDone func()) (output.Voice, error) {
	go onDone()
	return noopVoice{}, nil
}

func (noopSink) Close() error { return nil }

func TestParseEditCommand(t *testing.T) {
	cases := []struct {
		in          string
		path        string
		instruction string
		ok          bool
	}{
		{"/edit photo.png make it blue", "photo.png", "make it blue", true},
		{"/edit /tmp/a.jpg crop to a square", "/tmp/a.jpg", "crop to a square", true},
		{"/edit photo.png", "", "", false},
		{"/edit  ", "", "", false},
		{"edit photo.png blue", "", "", false},
		{"hello there", "", "", false},
	}

	for _, c := range cases {
		path, instruction, ok := parseEditCommand(c.in)
		if ok != c.ok {
			t.Errorf("parseEditCommand(%q): expected ok=%v, got %v", c.in, c.ok, ok)
			continue
		}
		if path != c.path || instruction != c.instruction {
			t.Errorf("parseEditCommand(%q): got (%q, %q)", c.in, path, instruction)
		}
	}
}

func TestMimeFromPath(t *testing.T) {
	cases := map[string]string{
		"a.jpg":    "image/jpeg",
		"b.JPEG":   "image/jpeg",
		"c.webp":   "image/webp",
		"d.gif":    "image/gif",
		"e.png":    "image/png",
		"noext":    "image/png",
	}
	for path, want := range cases {
		if got := mimeFromPath(path); got != want {
			t.Errorf("mimeFromPath(%q): expected %s, got %s", path, want, got)
		}
	}
}

func TestSaveWAV(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x40, 0xFF, 0x7F}
	gen := &fakeGen{payload: base64.StdEncoding.EncodeToString(raw)}
	a := newTestApp(t, gen)

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := a.SaveWAV("hello", path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(data) != 44+len(raw) {
		t.Errorf("expected %d bytes, got %d", 44+len(raw), len(data))
	}
	if string(data[0:4]) != "RIFF" {
		t.Error("missing RIFF header")
	}
}

func TestSaveWAVBadPayload(t *testing.T) {
	a := newTestApp(t, &fakeGen{payload: "@@@"})

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := a.SaveWAV("hello", path); err == nil {
		t.Fatal("expected error for undecodable payload")
	}
}

func newTestApp(t *testing.T, gen generator) *App {
	t.Helper()

	store, err := imagestore.NewAt(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &App{
		cfg:    config.Default(),
		gen:    gen,
		ctrl:   playback.NewController(noopSink{}),
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestSayPlaysToCompletion(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x40}
	a := newTestApp(t, &fakeGen{payload: base64.StdEncoding.EncodeToString(raw)})

	if err := a.Say("hello"); err != nil {
		t.Fatalf("say failed: %v", err)
	}
	if a.ctrl.State() != playback.StateIdle {
		t.Errorf("expected idle after completion, got %s", a.ctrl.State())
	}
}

func TestCollectTurnConcatenatesChunks(t *testing.T) {
	a := newTestApp(t, &fakeGen{})

	client := live.NewClient(live.Config{})
	client.Chunks <- live.Chunk{Payload: base64.StdEncoding.EncodeToString([]byte{0x00, 0x00, 0x00, 0x40})}
	client.Chunks <- live.Chunk{Payload: base64.StdEncoding.EncodeToString([]byte{0xFF, 0x7F})}
	client.TurnDone <- struct{}{}

	buf, err := a.collectTurn(client)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if buf.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %d", buf.Frames())
	}
	if buf.SampleRate != 24000 {
		t.Errorf("expected 24kHz, got %d", buf.SampleRate)
	}
	want := []float32{0.0, 0.5, 32767.0 / 32768.0}
	for i, w := range want {
		if got := buf.Data[0][i]; got != w {
			t.Errorf("frame %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestCollectTurnBadChunk(t *testing.T) {
	a := newTestApp(t, &fakeGen{})

	client := live.NewClient(live.Config{})
	client.Chunks <- live.Chunk{Payload: "@@@"}

	if _, err := a.collectTurn(client); err == nil {
		t.Fatal("expected error for undecodable chunk")
	}
}

func TestCollectTurnStreamError(t *testing.T) {
	a := newTestApp(t, &fakeGen{})

	client := live.NewClient(live.Config{})
	client.Errs <- errors.New("connection reset")

	if _, err := a.collectTurn(client); err == nil {
		t.Fatal("expected stream error to propagate")
	}
}
