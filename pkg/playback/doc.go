// ABOUTME: Playback controller package with toggle semantics
// ABOUTME: Guarantees at most one session sounds at any time
// Package playback owns the single active audio session.
//
// The controller is a two-state machine (Idle, Playing). Toggle starts
// playback when idle and stops it when playing; stopping discards
// position, so a later toggle restarts the buffer from the beginning.
// There is no paused state. Natural completion of a session returns
// the controller to Idle automatically.
//
// All state transitions are serialized behind a mutex so the
// at-most-one-session invariant holds on a multi-threaded host.
package playback
