// ABOUTME: Audio sink interface definition
// ABOUTME: Common contract for audio playback backends
package output

// Voice is one sounding playback started on a Sink.
type Voice interface {
	// Stop halts output immediately, discarding unplayed samples.
	// Stopping a finished or already-stopped voice is a no-op, and the
	// completion callback does not fire after Stop.
	Stop()
}

// Sink represents an audio output device.
type Sink interface {
	// Open prepares the device for the given stream layout. Opening an
	// already-open sink with the same layout is a no-op.
	Open(sampleRate, channels int) error

	// Start begins playing interleaved s16le bytes and returns without
	// blocking. onDone fires once when the data has played to its
	// natural end.
	Start(pcm []byte, onDone func()) (Voice, error)

	// Close releases device resources.
	Close() error
}
