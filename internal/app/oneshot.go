// ABOUTME: Headless one-shot speech operations
// ABOUTME: Synthesizes text and either plays it or writes a WAV file
package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/decode"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/encode"
	"github.com/Cadenza-Studio/cadenza-go/pkg/playback"
)

// Say synthesizes text and plays it through to natural completion.
// Used by the -say flag; no TUI is involved.
func (a *App) Say(text string) error {
	payload, err := a.gen.Synthesize(a.ctx, text, a.cfg.Speech.Voice)
	if err != nil {
		return fmt.Errorf("app: synthesize: %w", err)
	}

	buf, err := decode.Base64PCM(payload, a.cfg.SpeechFormat())
	if err != nil {
		return fmt.Errorf("app: decode payload: %w", err)
	}

	log.Info().Int("frames", buf.Frames()).Dur("duration", buf.Duration()).Msg("playing")

	done := make(chan struct{}, 1)
	a.ctrl.SetOnStateChange(func(state playback.State) {
		if state == playback.StateIdle {
			done <- struct{}{}
		}
	})

	if err := a.ctrl.Play(buf); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-a.ctx.Done():
		a.ctrl.Stop()
		return a.ctx.Err()
	}
}

// SaveWAV synthesizes text and writes it to path as a WAV file.
func (a *App) SaveWAV(text, path string) error {
	payload, err := a.gen.Synthesize(a.ctx, text, a.cfg.Speech.Voice)
	if err != nil {
		return fmt.Errorf("app: synthesize: %w", err)
	}

	buf, err := decode.Base64PCM(payload, a.cfg.SpeechFormat())
	if err != nil {
		return fmt.Errorf("app: decode payload: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("app: create %q: %w", path, err)
	}
	defer f.Close()

	if err := encode.WAV(f, buf); err != nil {
		return fmt.Errorf("app: write wav: %w", err)
	}

	log.Info().Str("path", path).Dur("duration", buf.Duration()).Msg("speech saved")
	return nil
}
