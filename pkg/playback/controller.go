// ABOUTME: Playback controller owning the single active session
// ABOUTME: Implements play/stop/toggle over a lazily opened sink
package playback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/encode"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/output"
)

// ErrUnavailable indicates the host has no usable audio output. It
// wraps the sink's open error.
var ErrUnavailable = errors.New("audio output unavailable")

// State is the controller's playback state.
type State int

const (
	StateIdle State = iota
	StatePlaying
)

func (s State) String() string {
	if s == StatePlaying {
		return "playing"
	}
	return "idle"
}

// Session is one sounding instance of a buffer.
type Session struct {
	ID     string
	Buffer *audio.Buffer
	voice  output.Voice
}

// Controller drives a Sink with at-most-one active session. The sink
// device is opened lazily on the first play and kept for the life of
// the controller.
type Controller struct {
	mu       sync.Mutex
	sink     output.Sink
	opened   bool
	current  *Session
	onChange func(State)
}

// NewController creates a controller over the given sink.
func NewController(sink output.Sink) *Controller {
	return &Controller{sink: sink}
}

// SetOnStateChange registers a callback fired after every transition.
// The callback runs outside the controller lock.
func (c *Controller) SetOnStateChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return StatePlaying
	}
	return StateIdle
}

// IsPlaying reports whether a session is active.
func (c *Controller) IsPlaying() bool {
	return c.State() == StatePlaying
}

// Play starts a new session for buf if nothing is playing. It returns
// immediately; completion is reported through the state-change
// callback. Calling Play while a session is active is a no-op.
func (c *Controller) Play(buf *audio.Buffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked(buf)
}

// Stop halts the active session immediately, discarding any samples
// not yet rendered. Stopping when idle is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Toggle stops the active session if one exists, otherwise starts
// playing buf. This is the operation UI code calls.
func (c *Controller) Toggle(buf *audio.Buffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.stopLocked()
		return nil
	}
	return c.playLocked(buf)
}

// Close stops playback and releases the sink.
func (c *Controller) Close() error {
	c.Stop()
	return c.sink.Close()
}

func (c *Controller) playLocked(buf *audio.Buffer) error {
	if c.current != nil {
		return nil
	}
	if buf == nil {
		return fmt.Errorf("playback: nil buffer")
	}

	if !c.opened {
		if err := c.sink.Open(buf.SampleRate, buf.Channels()); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c.opened = true
	}

	sess := &Session{
		ID:     uuid.New().String(),
		Buffer: buf,
	}

	voice, err := c.sink.Start(encode.PCM(buf), func() { c.completed(sess) })
	if err != nil {
		return fmt.Errorf("playback: start session: %w", err)
	}
	sess.voice = voice
	c.current = sess

	log.Debug().Str("session", sess.ID).Int("frames", buf.Frames()).Msg("playback started")
	c.notifyLocked(StatePlaying)
	return nil
}

func (c *Controller) stopLocked() {
	if c.current == nil {
		return
	}

	sess := c.current
	c.current = nil
	sess.voice.Stop()

	log.Debug().Str("session", sess.ID).Msg("playback stopped")
	c.notifyLocked(StateIdle)
}

// completed handles natural end-of-buffer for sess. A completion that
// races a Stop or a newer session is ignored: only the session still
// occupying the slot may clear it.
func (c *Controller) completed(sess *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != sess {
		return
	}
	c.current = nil

	log.Debug().Str("session", sess.ID).Msg("playback completed")
	c.notifyLocked(StateIdle)
}

// notifyLocked fires the state callback on its own goroutine so
// listeners cannot deadlock back into the controller.
func (c *Controller) notifyLocked(state State) {
	if c.onChange == nil {
		return
	}
	fn := c.onChange
	go fn(state)
}
