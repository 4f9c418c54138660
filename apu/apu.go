// Package apu emulates the audio processing unit of the NES: two pulse
// channels, a triangle channel, a noise channel and a delta-modulation
// channel, mixed non-linearly and resampled to an arbitrary output rate.
//
// The APU is driven from two sides running on different threads: the
// emulation loop writes registers and steps cycles, while the audio pipeline
// pulls finished samples. A single mutex serializes all state access; no
// method blocks or performs I/O under the lock.
package apu

import (
	"sync"
)

type APU struct {
	mu sync.Mutex

	pulse1   pulseChannel
	pulse2   pulseChannel
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	frame frameCounter
	mix   mixer

	// Rate converter: fractional CPU cycles carried over between output
	// samples so that emulated time never drifts from audio time.
	remainder float64

	cycles uint64 // total cycles stepped, for pacing diagnostics.
}

// New creates a powered-up APU. mem is the bus capability used by the DMC to
// fetch sample bytes; it may be nil, in which case the DMC reads zeros.
func New(mem MemoryReader) *APU {
	a := &APU{}
	a.dmc.mem = mem
	a.resetUnlocked()
	return a
}

// Reset reinitializes all channel, sequencer and filter state. The installed
// memory reader is preserved.
func (a *APU) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetUnlocked()
}

func (a *APU) resetUnlocked() {
	a.pulse1.reset()
	a.pulse2.reset()
	a.triangle.reset()
	a.noise.reset()
	a.dmc.reset()
	a.frame.reset()
	a.mix.reset()
	a.remainder = 0

	a.pulse1.onesComplement = true
}

// WriteReg decodes a CPU bus write in $4000-$4017. Unknown addresses are
// no-ops.
func (a *APU) WriteReg(addr uint16, val uint8) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch addr {
	case 0x4000:
		a.pulse1.writeControl(val)
	case 0x4001:
		a.pulse1.writeSweep(val)
	case 0x4002:
		a.pulse1.writeTimerLow(val)
	case 0x4003:
		a.pulse1.writeTimerHigh(val)
	case 0x4004:
		a.pulse2.writeControl(val)
	case 0x4005:
		a.pulse2.writeSweep(val)
	case 0x4006:
		a.pulse2.writeTimerLow(val)
	case 0x4007:
		a.pulse2.writeTimerHigh(val)
	case 0x4008:
		a.triangle.writeControl(val)
	case 0x400A:
		a.triangle.writeTimerLow(val)
	case 0x400B:
		a.triangle.writeTimerHigh(val)
	case 0x400C:
		a.noise.writeControl(val)
	case 0x400E:
		a.noise.writePeriod(val)
	case 0x400F:
		a.noise.writeLength(val)
	case 0x4010:
		a.dmc.writeControl(val)
	case 0x4011:
		a.dmc.writeDirectLoad(val)
	case 0x4012:
		a.dmc.writeSampleAddress(val)
	case 0x4013:
		a.dmc.writeSampleLength(val)
	case 0x4015:
		a.pulse1.setEnabled(val&0x01 != 0)
		a.pulse2.setEnabled(val&0x02 != 0)
		a.triangle.setEnabled(val&0x04 != 0)
		a.noise.setEnabled(val&0x08 != 0)
		a.dmc.setEnabled(val&0x10 != 0)
	case 0x4017:
		a.tickFrame(a.frame.writeControl(val))
	}
}

// ReadStatus returns the $4015 status byte: one length-counter-active bit
// per channel, plus bit 4 set while DMC bytes remain.
func (a *APU) ReadStatus() uint8 {
	a.mu.Lock()
	defer a.mu.Unlock()

	var status uint8
	if a.pulse1.lenCounter.active() {
		status |= 0x01
	}
	if a.pulse2.lenCounter.active() {
		status |= 0x02
	}
	if a.triangle.lenCounter.active() {
		status |= 0x04
	}
	if a.noise.lenCounter.active() {
		status |= 0x08
	}
	if a.dmc.status() {
		status |= 0x10
	}
	return status
}

// Step advances the APU by the given number of CPU cycles. It is the entry
// point for an external CPU loop; the sample pipeline steps cycles on its
// own through FillBuffer.
func (a *APU) Step(cycles int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stepCycles(cycles)
}

// Cycles returns the total number of CPU cycles stepped so far.
func (a *APU) Cycles() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cycles
}

func (a *APU) stepCycles(cycles int) {
	for i := 0; i < cycles; i++ {
		a.tickFrame(a.frame.tick())

		a.triangle.tickTimer()
		a.noise.tickTimer()
		a.dmc.tickTimer()
		a.dmc.fetch()
	}
	a.cycles += uint64(cycles)
}

func (a *APU) tickFrame(ft frameType) {
	switch ft {
	case noFrame:
		return
	case halfFrame:
		a.pulse1.tickLength()
		a.pulse2.tickLength()
		a.triangle.tickLength()
		a.noise.tickLength()
		a.pulse1.tickSweep()
		a.pulse2.tickSweep()
		fallthrough
	case quarterFrame:
		a.pulse1.tickEnvelope()
		a.pulse2.tickEnvelope()
		a.noise.tickEnvelope()
		a.triangle.tickLinear()
	}
}

// Sample computes one output sample at the given rate without stepping the
// clock. Pulse phase accumulators do advance, as they live in the sample
// domain.
func (a *APU) Sample(sampleRate float64) float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextSample(sampleRate)
}

func (a *APU) nextSample(sampleRate float64) float32 {
	p1 := a.pulse1.sample(sampleRate)
	p2 := a.pulse2.sample(sampleRate)
	tri := a.triangle.sample()
	noise := a.noise.sample()
	dmc := a.dmc.sample()

	return a.mix.mix(p1, p2, tri, noise, dmc, sampleRate)
}

// FillBuffer produces len(out) samples, stepping the APU clock the correct
// fractional number of cycles per sample. A nil or empty buffer is a no-op.
func (a *APU) FillBuffer(out []float32, sampleRate float64) {
	if len(out) == 0 || sampleRate <= 0 {
		return
	}

	cyclesPerSample := CPUClock / sampleRate

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range out {
		a.remainder += cyclesPerSample
		if cycles := int(a.remainder); cycles > 0 {
			a.stepCycles(cycles)
			a.remainder -= float64(cycles)
		}
		out[i] = a.nextSample(sampleRate)
	}
}
