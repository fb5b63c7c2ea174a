// ABOUTME: Bubbletea model for the studio TUI
// ABOUTME: Defines chat transcript state and update logic
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Line is one transcript entry.
type Line struct {
	Role string // "you", "model", or "status"
	Text string
}

// Model represents the TUI state
type Model struct {
	// Transcript
	lines []Line

	// Input
	input string

	// Request toggles
	thinking  bool
	useSearch bool

	// Playback
	playState string // "idle" or "playing"
	canSpeak  bool

	// Busy indicator while a request is in flight
	busy bool

	// Dimensions
	width  int
	height int

	controls *Controls
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ReplyMsg:
		m.busy = false
		if msg.Err != nil {
			m.lines = append(m.lines, Line{Role: "status", Text: "error: " + msg.Err.Error()})
		} else {
			m.lines = append(m.lines, Line{Role: "model", Text: msg.Text})
			m.canSpeak = true
		}
	case StatusMsg:
		m.lines = append(m.lines, Line{Role: "status", Text: msg.Text})
	case PlaybackMsg:
		if msg.Playing {
			m.playState = "playing"
		} else {
			m.playState = "idle"
		}
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.controls != nil {
			select {
			case m.controls.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "ctrl+t":
		m.thinking = !m.thinking
	case "ctrl+g":
		m.useSearch = !m.useSearch
	case "ctrl+p":
		if m.canSpeak && m.controls != nil {
			select {
			case m.controls.Toggles <- struct{}{}:
			default:
			}
		}
	case "enter":
		text := strings.TrimSpace(m.input)
		if text == "" || m.busy {
			return m, nil
		}
		m.lines = append(m.lines, Line{Role: "you", Text: text})
		m.input = ""
		m.busy = true
		if m.controls != nil {
			m.controls.Submits <- Submit{
				Text:     text,
				Thinking: m.thinking,
				Search:   m.useSearch,
			}
		}
	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderTranscript()
	s += m.renderInput()
	s += m.renderHelp()

	return s
}

func (m Model) renderHeader() string {
	mode := "flash"
	if m.thinking {
		mode = "thinking"
	}
	search := "off"
	if m.useSearch {
		search = "on"
	}
	return fmt.Sprintf("─ Cadenza ─ model: %s │ search: %s │ audio: %s\n\n",
		mode, search, m.playState)
}

func (m Model) renderTranscript() string {
	// Show as many trailing lines as fit above the input area.
	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}

	start := 0
	if len(m.lines) > visible {
		start = len(m.lines) - visible
	}

	s := ""
	for _, line := range m.lines[start:] {
		switch line.Role {
		case "you":
			s += "you>   " + line.Text + "\n"
		case "model":
			s += "model> " + line.Text + "\n"
		default:
			s += "  ·    " + line.Text + "\n"
		}
	}
	return s
}

func (m Model) renderInput() string {
	prompt := "> "
	if m.busy {
		prompt = "… "
	}
	return "\n" + prompt + m.input + "█\n"
}

func (m Model) renderHelp() string {
	return "\nenter send · ctrl+p speak/stop · ctrl+t thinking · ctrl+g search · /edit <path> <instruction> · esc quit\n"
}
