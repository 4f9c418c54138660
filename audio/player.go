package audio

import (
	"time"

	"nesapu/apu"
	"nesapu/emu/log"
)

// Config is the audio section of the configuration file.
type Config struct {
	Backend    string  `toml:"backend"`     // "sdl" (default) or "portaudio"
	SampleRate int     `toml:"sample_rate"` // output rate in Hz
	LatencyMs  int     `toml:"latency_ms"`  // device-side buffering target
	Volume     float64 `toml:"volume"`      // output gain, 1.0 = unattenuated
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = "sdl"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.LatencyMs <= 0 {
		c.LatencyMs = 50
	}
	if c.Volume <= 0 {
		c.Volume = 1.0
	}
	return c
}

func (c Config) latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// Player assembles and owns the pipeline: ring buffer, producer and sink.
// The APU itself is shared with the emulation side and never reset by the
// player, so pausing, stopping or rebuilding the pipeline is stateless-safe.
type Player struct {
	apu *apu.APU
	cfg Config

	ring *Ring
	prod *Producer
	sink Sink
}

func NewPlayer(a *apu.APU, cfg Config) *Player {
	return &Player{apu: a, cfg: cfg.withDefaults()}
}

// Start builds the pipeline and begins playback. A sink failure triggers one
// full teardown and rebuild; if that fails too the player stays silent and
// the error is returned for the caller to report.
func (p *Player) Start() error {
	if err := p.build(); err != nil {
		log.ModAudio.WarnZ("audio start failed, rebuilding").Error("err", err).End()
		p.teardown()
		if err := p.build(); err != nil {
			p.teardown()
			return err
		}
	}
	return nil
}

// Stop cancels the producer and releases the device. APU state is untouched.
func (p *Player) Stop() {
	p.teardown()
}

// Pause suspends or resumes both ends of the pipeline without touching APU
// or ring state.
func (p *Player) Pause(paused bool) {
	if p.sink == nil {
		return
	}
	if paused {
		p.prod.Stop()
		p.sink.Pause(true)
	} else {
		p.sink.Pause(false)
		p.prod.Start()
	}
}

// SetSampleRate reconfigures the output rate. The device and the ring buffer
// are rebuilt from scratch; the ring is sized to the new rate, never resized
// in place.
func (p *Player) SetSampleRate(rate int) error {
	p.teardown()
	p.cfg.SampleRate = rate
	p.cfg = p.cfg.withDefaults()
	return p.Start()
}

// SampleRate returns the current output rate in Hz.
func (p *Player) SampleRate() int {
	return p.cfg.SampleRate
}

func (p *Player) build() error {
	// Hold several latency windows of audio so one late producer tick never
	// empties the ring.
	capacity := max(4*p.cfg.SampleRate*p.cfg.LatencyMs/1000, 4096)
	p.ring = NewRing(capacity)
	p.prod = NewProducer(p.apu, p.ring, p.cfg.SampleRate)
	p.prod.SetVolume(p.cfg.Volume)

	sink, err := openSink(p.cfg.Backend, p.ring, p.cfg.SampleRate, p.cfg.latency())
	if err != nil {
		return err
	}
	p.sink = sink

	p.prod.Start()
	if err := p.sink.Start(); err != nil {
		return err
	}

	log.ModAudio.InfoZ("playback started").
		String("backend", p.cfg.Backend).
		Int("rate", p.cfg.SampleRate).
		Int("ring", capacity).
		End()
	return nil
}

func (p *Player) teardown() {
	if p.prod != nil {
		p.prod.Stop()
		p.prod = nil
	}
	if p.sink != nil {
		p.sink.Close()
		p.sink = nil
	}
	p.ring = nil
}
