// ABOUTME: Audio output package defining the playback sink contract
// ABOUTME: Provides the oto-backed implementation used by the player
// Package output abstracts the audio device behind a small Sink
// interface so playback logic can be tested without hardware.
//
// The oto backend allows exactly one device context per process; the
// sink is therefore opened lazily on first use and reused for the
// lifetime of the application.
package output
