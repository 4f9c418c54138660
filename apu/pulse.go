package apu

import (
	"nesapu/emu/log"
)

// Duty cycle fractions selected by bits 6-7 of the control register.
var pulseDuty = [4]float64{0.125, 0.25, 0.5, 0.75}

// pulseChannel is one of the two square-wave voices. Each contains an
// envelope generator, a sweep unit, an 11-bit timer and a length counter.
//
//	               +---------+    +---------+
//	               |  Sweep  |--->|  Timer  |
//	               +---------+    +---------+
//	                    |              |
//	                    v              v
//	+---------+        |\            |\             +---------+
//	|Envelope |------->| >---------->| >----------->|   DAC   |
//	+---------+        |/            |/             +---------+
//	                                  ^
//	                           Length Counter
//
// Unlike the timer-sequenced voices, the square wave is produced in the
// sample domain: a phase accumulator advances by frequency/sampleRate per
// output sample and compares against the duty fraction.
type pulseChannel struct {
	duty       uint8
	env        envelope
	lenCounter lengthCounter
	timer      uint16 // 11-bit period
	phase      float64

	sweepEnabled bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepDivider uint8
	sweepReload  bool
	sweepMute    bool

	// Pulse 1 uses ones' complement when sweeping downwards, so it
	// subtracts one more than pulse 2 does.
	onesComplement bool
}

// $4000/$4004
func (pc *pulseChannel) writeControl(val uint8) {
	pc.duty = (val >> 6) & 0x03
	pc.env.init(val)
	pc.lenCounter.halt = val&0x20 != 0
	pc.env.restart()

	log.ModAPU.DebugZ("write pulse control").
		Hex8("val", val).
		Uint8("duty", pc.duty).
		End()
}

// $4001/$4005
func (pc *pulseChannel) writeSweep(val uint8) {
	pc.sweepEnabled = val&0x80 != 0
	pc.sweepPeriod = (val >> 4) & 0x07
	pc.sweepNegate = val&0x08 != 0
	pc.sweepShift = val & 0x07
	pc.sweepReload = true

	log.ModAPU.DebugZ("write pulse sweep").Hex8("val", val).End()
}

// $4002/$4006
func (pc *pulseChannel) writeTimerLow(val uint8) {
	pc.timer = (pc.timer & 0xFF00) | uint16(val)
}

// $4003/$4007
func (pc *pulseChannel) writeTimerHigh(val uint8) {
	pc.timer = (pc.timer & 0x00FF) | (uint16(val&0x07) << 8)
	pc.lenCounter.load(val >> 3)
	pc.env.restart()

	log.ModAPU.DebugZ("write pulse length").
		Hex8("val", val).
		Uint16("timer", pc.timer).
		End()
}

func (pc *pulseChannel) setEnabled(enabled bool) {
	pc.lenCounter.setEnabled(enabled)
}

func (pc *pulseChannel) tickLength() {
	pc.lenCounter.tick()
}

func (pc *pulseChannel) tickEnvelope() {
	pc.env.tick()
}

// applySweep recomputes the target period and, unless the result mutes the
// channel, writes it back into the timer.
func (pc *pulseChannel) applySweep() {
	if !pc.sweepEnabled || pc.sweepShift == 0 {
		pc.sweepMute = false
		return
	}
	change := pc.timer >> pc.sweepShift
	var target uint16
	if pc.sweepNegate {
		target = pc.timer - change
		if pc.onesComplement {
			target--
		}
	} else {
		target = pc.timer + change
	}
	pc.sweepMute = target > 0x7FF || pc.timer < 8
	if !pc.sweepMute {
		pc.timer = target
	}
}

func (pc *pulseChannel) tickSweep() {
	if pc.sweepReload {
		pc.sweepReload = false
		pc.sweepDivider = pc.sweepPeriod
		if pc.sweepEnabled {
			pc.applySweep()
		}
		return
	}
	if pc.sweepDivider == 0 {
		pc.sweepDivider = pc.sweepPeriod
		if pc.sweepEnabled {
			pc.applySweep()
		}
	} else {
		pc.sweepDivider--
	}
}

// sample advances the phase accumulator by one output sample and returns the
// current DAC level (0-15).
func (pc *pulseChannel) sample(sampleRate float64) float64 {
	if !pc.lenCounter.active() {
		return 0
	}
	if pc.timer < 8 || pc.sweepMute {
		return 0
	}

	freq := CPUClock / (16.0 * (float64(pc.timer) + 1.0))
	pc.phase += freq / sampleRate
	if pc.phase >= 1.0 {
		pc.phase -= float64(int(pc.phase))
	}

	if pc.phase < pulseDuty[pc.duty] {
		return float64(pc.env.level())
	}
	return 0
}

func (pc *pulseChannel) reset() {
	ones := pc.onesComplement
	*pc = pulseChannel{onesComplement: ones}
}
