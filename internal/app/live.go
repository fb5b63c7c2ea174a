// ABOUTME: Streaming speech over the bidirectional live endpoint
// ABOUTME: Collects audio chunks for one turn and plays the result
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/internal/live"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/decode"
	"github.com/Cadenza-Studio/cadenza-go/pkg/playback"
)

// streamTimeout bounds how long one live turn may take end to end.
const streamTimeout = 2 * time.Minute

// LiveSay speaks text through the streaming dialog endpoint instead
// of the one-shot synthesis model. Audio chunks are decoded as they
// arrive and played back once the model finishes its turn.
func (a *App) LiveSay(text string) error {
	client := live.NewClient(live.Config{
		APIKey: a.cfg.ResolveAPIKey(),
		Model:  a.cfg.Models.Live,
		Voice:  a.cfg.Speech.Voice,
	})
	if err := client.Connect(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer client.Close()

	if err := client.Send(text); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	buf, err := a.collectTurn(client)
	if err != nil {
		return err
	}
	if buf.Frames() == 0 {
		return fmt.Errorf("app: live turn produced no audio")
	}

	log.Info().Dur("duration", buf.Duration()).Msg("live turn complete, playing")

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

// collectTurn drains chunks until the turn completes, decoding and
// concatenating them into a single buffer.
func (a *App) collectTurn(client *live.Client) (*audio.Buffer, error) {
	format := a.cfg.SpeechFormat()
	buf := &audio.Buffer{
		SampleRate: format.SampleRate,
		Data:       make([][]float32, format.Channels),
	}

	deadline := time.NewTimer(streamTimeout)
	defer deadline.Stop()

	for {
		select {
		case chunk := <-client.Chunks:
			part, err := decode.Base64PCM(chunk.Payload, format)
			if err != nil {
				return nil, fmt.Errorf("app: decode chunk: %w", err)
			}
			for c := range buf.Data {
				buf.Data[c] = append(buf.Data[c], part.Data[c]...)
			}
		case <-client.TurnDone:
			// Chunks and TurnDone arrive on separate channels; drain
			// anything already queued before finishing.
			for {
				select {
				case chunk := <-client.Chunks:
					part, err := decode.Base64PCM(chunk.Payload, format)
					if err != nil {
						return nil, fmt.Errorf("app: decode chunk: %w", err)
					}
					for c := range buf.Data {
						buf.Data[c] = append(buf.Data[c], part.Data[c]...)
					}
				default:
					return buf, nil
				}
			}
		case err := <-client.Errs:
			return nil, fmt.Errorf("app: live stream: %w", err)
		case <-deadline.C:
			return nil, fmt.Errorf("app: live turn timed out")
		case <-a.ctx.Done():
			return nil, a.ctx.Err()
		}
	}
}
