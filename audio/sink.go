package audio

import (
	"fmt"
	"time"
)

// Sink is an output device consuming samples from the ring buffer at its own
// hardware-paced cadence. Implementations never block on the producer: an
// empty ring plays as silence.
type Sink interface {
	// Start begins playback.
	Start() error
	// Pause suspends or resumes the device without discarding state.
	Pause(paused bool)
	// Close releases the device. The sink cannot be restarted afterwards.
	Close() error
}

func openSink(backend string, ring *Ring, sampleRate int, latency time.Duration) (Sink, error) {
	switch backend {
	case "", "sdl":
		return newSDLSink(ring, sampleRate, latency)
	case "portaudio":
		return newPortAudioSink(ring, sampleRate)
	}
	return nil, fmt.Errorf("unknown audio backend %q", backend)
}
