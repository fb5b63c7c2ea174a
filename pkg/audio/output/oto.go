// ABOUTME: Oto-based audio sink implementation
// ABOUTME: Handles PCM playback with software volume control using oto
package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"
)

// Oto is a Sink backed by the oto library.
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	sampleRate int
	channels   int
	volume     int
	muted      bool
}

// NewOto creates an oto sink. The device context itself is not created
// until Open is called.
func NewOto() *Oto {
	return &Oto{volume: 100}
}

// Open initializes the device context on first use. oto only allows a
// single context per process, so a later layout change is logged and
// the existing context kept.
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Warn().
				Int("have_rate", o.sampleRate).Int("have_channels", o.channels).
				Int("want_rate", sampleRate).Int("want_channels", channels).
				Msg("audio layout change requested but oto cannot reinitialize, keeping existing context")
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	log.Info().Int("sample_rate", sampleRate).Int("channels", channels).
		Msg("audio output initialized")

	return nil
}

// Start plays pcm on a fresh oto player and watches it for natural
// completion. onDone never fires after Stop.
func (o *Oto) Start(pcm []byte, onDone func()) (Voice, error) {
	o.mu.Lock()
	ctx := o.otoCtx
	volume, muted := o.volume, o.muted
	o.mu.Unlock()

	if ctx == nil {
		return nil, fmt.Errorf("output not initialized")
	}

	player := ctx.NewPlayer(bytes.NewReader(applyVolume(pcm, volume, muted)))
	player.Play()

	v := &otoVoice{player: player}
	go v.watch(onDone)

	return v, nil
}

// Close suspends the device context.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

// SetVolume sets the volume (0-100) applied to subsequent voices.
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.mu.Lock()
	o.volume = volume
	o.mu.Unlock()
}

// SetMuted sets mute state applied to subsequent voices.
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	o.muted = muted
	o.mu.Unlock()
}

// otoVoice wraps one oto player instance.
type otoVoice struct {
	mu      sync.Mutex
	player  *oto.Player
	stopped bool
}

func (v *otoVoice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped {
		return
	}
	v.stopped = true
	v.player.Pause()
	if err := v.player.Close(); err != nil {
		log.Debug().Err(err).Msg("closing stopped player")
	}
}

// watch polls the player until it drains, then fires onDone unless the
// voice was stopped first.
func (v *otoVoice) watch(onDone func()) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		v.mu.Lock()
		if v.stopped {
			v.mu.Unlock()
			return
		}
		if !v.player.IsPlaying() {
			v.stopped = true
			if err := v.player.Close(); err != nil {
				log.Debug().Err(err).Msg("closing drained player")
			}
			v.mu.Unlock()
			if onDone != nil {
				onDone()
			}
			return
		}
		v.mu.Unlock()
	}
}

// applyVolume scales s16le bytes by the volume multiplier.
func applyVolume(pcm []byte, volume int, muted bool) []byte {
	multiplier := getVolumeMultiplier(volume, muted)
	if multiplier == 1.0 {
		return pcm
	}

	result := make([]byte, len(pcm))
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(pcm[i:]))
		scaled := float64(sample) * multiplier

		// Clamp to int16 range to prevent overflow.
		if scaled > 32767 {
			scaled = 32767
		} else if scaled < -32768 {
			scaled = -32768
		}

		binary.LittleEndian.PutUint16(result[i:], uint16(int16(scaled)))
	}
	return result
}

// getVolumeMultiplier calculates the volume multiplier.
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
