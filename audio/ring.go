// Package audio is the real-time delivery pipeline between the APU and the
// output device. A periodic producer batches samples into a bounded ring
// buffer; the device-side consumer drains it at its own pace. Neither side
// ever blocks the other: writes and reads are partial, and underruns are
// padded with silence.
package audio

import (
	"sync"
)

// Ring is a fixed-capacity circular buffer of finished output samples shared
// between the producer and the device consumer. Both operations are short,
// bounded and non-blocking.
type Ring struct {
	mu  sync.Mutex
	buf []float32
	r   int
	w   int
	n   int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Write copies as many samples as fit and returns the count written. It
// never waits for free space.
func (rb *Ring) Write(src []float32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	free := len(rb.buf) - rb.n
	if len(src) > free {
		src = src[:free]
	}
	for _, s := range src {
		rb.buf[rb.w] = s
		rb.w++
		if rb.w == len(rb.buf) {
			rb.w = 0
		}
	}
	rb.n += len(src)
	return len(src)
}

// Read copies as many samples as available into dst and returns the count
// read. Short reads are expected; the caller silences the remainder.
func (rb *Ring) Read(dst []float32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if len(dst) > rb.n {
		dst = dst[:rb.n]
	}
	for i := range dst {
		dst[i] = rb.buf[rb.r]
		rb.r++
		if rb.r == len(rb.buf) {
			rb.r = 0
		}
	}
	rb.n -= len(dst)
	return len(dst)
}

// Clear drops all buffered samples.
func (rb *Ring) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.r, rb.w, rb.n = 0, 0, 0
}

// Len returns the number of buffered samples.
func (rb *Ring) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.n
}

// Free returns the remaining capacity.
func (rb *Ring) Free() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return len(rb.buf) - rb.n
}

// Cap returns the total capacity.
func (rb *Ring) Cap() int {
	return len(rb.buf)
}
