package audio

import (
	"time"

	"nesapu/apu"
	"nesapu/emu/log"
)

// produceHz is the rate of the producer's software timer. Each tick tops the
// ring buffer up; 240 Hz keeps batches around 4 ms of audio, well under the
// device buffering.
const produceHz = 240

// Producer periodically pulls batches of samples out of the APU and pushes
// them into the ring buffer. Its cadence is independent of the consumer's:
// if the ring is full it simply produces nothing that tick.
type Producer struct {
	apu        *apu.APU
	ring       *Ring
	sampleRate float64
	volume     float32
	scratch    []float32

	stop chan struct{}
	done chan struct{}
}

func NewProducer(a *apu.APU, ring *Ring, sampleRate int) *Producer {
	return &Producer{
		apu:        a,
		ring:       ring,
		sampleRate: float64(sampleRate),
		volume:     1.0,
		scratch:    make([]float32, ring.Cap()),
	}
}

// SetVolume sets the output gain applied to produced batches. Call before
// Start; the producer goroutine reads it without synchronization.
func (p *Producer) SetVolume(vol float64) {
	p.volume = float32(vol)
}

// Start launches the periodic task. It is a no-op on a running producer.
func (p *Producer) Start() {
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.loop(p.stop, p.done)

	log.ModAudio.InfoZ("producer started").
		Float64("rate", p.sampleRate).
		Int("ring", p.ring.Cap()).
		End()
}

// Stop cancels the periodic task and waits for the loop to exit. The APU and
// ring are left untouched, so a later Start resumes cleanly.
func (p *Producer) Stop() {
	if p.stop == nil {
		return
	}
	close(p.stop)
	<-p.done
	p.stop = nil
	p.done = nil

	log.ModAudio.InfoZ("producer stopped").End()
}

func (p *Producer) loop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(time.Second / produceHz)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.produce()
		}
	}
}

func (p *Producer) produce() {
	n := min(p.ring.Free(), len(p.scratch))
	if n == 0 {
		return
	}
	p.apu.FillBuffer(p.scratch[:n], p.sampleRate)
	if p.volume != 1.0 {
		for i := range p.scratch[:n] {
			p.scratch[i] *= p.volume
		}
	}

	// Free space only grows between the check and the write (the consumer
	// can only drain), so the write cannot come up short.
	p.ring.Write(p.scratch[:n])
}
