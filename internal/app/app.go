// ABOUTME: Main application orchestration
// ABOUTME: Wires config, studio client, playback, and the TUI together
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/internal/config"
	"github.com/Cadenza-Studio/cadenza-go/internal/imagestore"
	"github.com/Cadenza-Studio/cadenza-go/internal/studio"
	"github.com/Cadenza-Studio/cadenza-go/internal/ui"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/decode"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/output"
	"github.com/Cadenza-Studio/cadenza-go/pkg/playback"
)

// generator is what the app needs from the studio client.
type generator interface {
	Synthesize(ctx context.Context, text, voice string) (string, error)
	EditImage(ctx context.Context, instruction string, image []byte, mimeType string) (*studio.ImageResult, error)
}

// chatter is a conversation the app can continue.
type chatter interface {
	Send(ctx context.Context, text string, opts studio.RequestOptions) (string, error)
}

// App runs the interactive studio session.
type App struct {
	cfg   *config.Config
	gen   generator
	chat  chatter
	ctrl  *playback.Controller
	store *imagestore.Store

	program *tea.Program

	// Last reply and its decoded speech, lazily synthesized. The
	// buffer is invalidated whenever a newer reply lands.
	lastReply  string
	lastBuffer *audio.Buffer

	ctx    context.Context
	cancel context.CancelFunc
}

// New wires an application from config.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := studio.New(ctx, cfg.ResolveAPIKey(), cfg.Models)
	if err != nil {
		return nil, err
	}

	store, err := imagestore.New()
	if err != nil {
		return nil, fmt.Errorf("app: image store: %w", err)
	}

	sink := output.NewOto()
	sink.SetVolume(cfg.Speech.Volume)

	appCtx, cancel := context.WithCancel(ctx)
	return &App{
		cfg:    cfg,
		gen:    client,
		chat:   client.NewChat(),
		ctrl:   playback.NewController(sink),
		store:  store,
		ctx:    appCtx,
		cancel: cancel,
	}, nil
}

// Run starts the TUI and processes UI events until quit.
func (a *App) Run() error {
	controls := ui.NewControls()
	program, err := ui.Run(controls)
	if err != nil {
		return fmt.Errorf("app: start TUI: %w", err)
	}
	a.program = program

	a.ctrl.SetOnStateChange(func(state playback.State) {
		program.Send(ui.PlaybackMsg{Playing: state == playback.StatePlaying})
	})

	go func() {
		if _, err := program.Run(); err != nil {
			log.Error().Err(err).Msg("TUI terminated")
		}
		a.cancel()
	}()

	for {
		select {
		case sub := <-controls.Submits:
			a.handleSubmit(sub)
		case <-controls.Toggles:
			a.handleSpeakToggle()
		case <-controls.Quit:
			a.Close()
			return nil
		case <-a.ctx.Done():
			a.Close()
			return nil
		}
	}
}

// Close stops playback and releases resources.
func (a *App) Close() {
	a.cancel()
	if err := a.ctrl.Close(); err != nil {
		log.Debug().Err(err).Msg("closing playback")
	}
}

func (a *App) handleSubmit(sub ui.Submit) {
	if path, instruction, ok := parseEditCommand(sub.Text); ok {
		a.handleEdit(path, instruction)
		// The UI set itself busy for this submit; release it.
		a.program.Send(ui.ReplyMsg{Text: "(image edit requested)"})
		return
	}

	reply, err := a.chat.Send(a.ctx, sub.Text, studio.RequestOptions{
		Thinking:  sub.Thinking,
		UseSearch: sub.Search,
	})
	if err != nil {
		log.Error().Err(err).Msg("chat failed")
		a.program.Send(ui.ReplyMsg{Err: err})
		return
	}

	// New reply invalidates the previously synthesized audio.
	a.lastReply = reply
	a.lastBuffer = nil
	a.ctrl.Stop()

	a.program.Send(ui.ReplyMsg{Text: reply})
}

// handleSpeakToggle plays or stops speech for the last reply,
// synthesizing and decoding it on first use.
func (a *App) handleSpeakToggle() {
	if a.ctrl.IsPlaying() {
		a.ctrl.Stop()
		return
	}
	if a.lastReply == "" {
		return
	}

	if a.lastBuffer == nil {
		a.program.Send(ui.StatusMsg{Text: "synthesizing…"})

		payload, err := a.gen.Synthesize(a.ctx, a.lastReply, a.cfg.Speech.Voice)
		if err != nil {
			log.Error().Err(err).Msg("synthesis failed")
			a.program.Send(ui.StatusMsg{Text: "speech failed: " + err.Error()})
			return
		}

		buf, err := decode.Base64PCM(payload, a.cfg.SpeechFormat())
		if err != nil {
			log.Error().Err(err).Msg("payload undecodable")
			a.program.Send(ui.StatusMsg{Text: "speech failed: " + err.Error()})
			return
		}
		a.lastBuffer = buf
	}

	if err := a.ctrl.Toggle(a.lastBuffer); err != nil {
		log.Error().Err(err).Msg("playback failed")
		a.program.Send(ui.StatusMsg{Text: "playback failed: " + err.Error()})
	}
}

func (a *App) handleEdit(path, instruction string) {
	data, err := os.ReadFile(path)
	if err != nil {
		a.program.Send(ui.StatusMsg{Text: "edit failed: " + err.Error()})
		return
	}

	result, err := a.gen.EditImage(a.ctx, instruction, data, mimeFromPath(path))
	if err != nil {
		log.Error().Err(err).Msg("image edit failed")
		a.program.Send(ui.StatusMsg{Text: "edit failed: " + err.Error()})
		return
	}

	saved, err := a.store.Save(result.Data, result.MIMEType)
	if err != nil {
		a.program.Send(ui.StatusMsg{Text: "edit failed: " + err.Error()})
		return
	}

	note := "edited image saved: " + saved
	if result.Commentary != "" {
		note += " (" + result.Commentary + ")"
	}
	a.program.Send(ui.StatusMsg{Text: note})
}

// parseEditCommand splits "/edit <path> <instruction…>" inputs.
func parseEditCommand(text string) (path, instruction string, ok bool) {
	if !strings.HasPrefix(text, "/edit ") {
		return "", "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, "/edit "))
	fields := strings.SplitN(rest, " ", 2)
	if len(fields) < 2 || fields[0] == "" || strings.TrimSpace(fields[1]) == "" {
		return "", "", false
	}
	return fields[0], strings.TrimSpace(fields[1]), true
}

// mimeFromPath guesses the upload MIME type from the file extension.
func mimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
