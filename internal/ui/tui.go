// ABOUTME: TUI initialization and control channels
// ABOUTME: Wraps the bubbletea program for the studio UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Submit is one user input ready to send, with its toggles.
type Submit struct {
	Text     string
	Thinking bool
	Search   bool
}

// ReplyMsg delivers a model reply (or failure) to the view.
type ReplyMsg struct {
	Text string
	Err  error
}

// StatusMsg adds an informational transcript line.
type StatusMsg struct {
	Text string
}

// PlaybackMsg reflects the playback controller's state.
type PlaybackMsg struct {
	Playing bool
}

// Controls holds channels for UI-to-app communication.
type Controls struct {
	Submits chan Submit
	Toggles chan struct{}
	Quit    chan struct{}
}

// NewControls creates the control channel set.
func NewControls() *Controls {
	return &Controls{
		Submits: make(chan Submit, 10),
		Toggles: make(chan struct{}, 10),
		Quit:    make(chan struct{}, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(controls *Controls) Model {
	return Model{
		playState: "idle",
		controls:  controls,
	}
}

// Run starts the TUI
func Run(controls *Controls) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(controls), tea.WithAltScreen())
	return p, nil
}
