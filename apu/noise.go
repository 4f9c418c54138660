package apu

import (
	"nesapu/emu/log"
)

// noiseChannel generates pseudo-random 1-bit noise at 16 different
// frequencies from a 15-bit linear-feedback shift register.
//
//	      Timer --> Shift Register   Length Counter
//	                    |                |
//	                    v                v
//	Envelope -------> Gate ----------> Gate --> (to mixer)
type noiseChannel struct {
	env        envelope
	lenCounter lengthCounter

	timer        uint16
	timerCounter uint16
	lfsr         uint16
	mode         bool // short sequence: feedback taps bit 6 instead of bit 1.
}

// $400C
func (nc *noiseChannel) writeControl(val uint8) {
	nc.env.init(val)
	nc.lenCounter.halt = val&0x20 != 0
	nc.env.restart()

	log.ModAPU.DebugZ("write noise control").Hex8("val", val).End()
}

// $400E
func (nc *noiseChannel) writePeriod(val uint8) {
	nc.timer = noisePeriodLUT[val&0x0F]
	nc.mode = val&0x80 != 0

	log.ModAPU.DebugZ("write noise period").
		Hex8("val", val).
		Uint16("period", nc.timer).
		Bool("mode", nc.mode).
		End()
}

// $400F
func (nc *noiseChannel) writeLength(val uint8) {
	nc.lenCounter.load(val >> 3)
	nc.env.restart()

	log.ModAPU.DebugZ("write noise length").Hex8("val", val).End()
}

func (nc *noiseChannel) setEnabled(enabled bool) {
	nc.lenCounter.setEnabled(enabled)
}

func (nc *noiseChannel) tickLength() {
	nc.lenCounter.tick()
}

func (nc *noiseChannel) tickEnvelope() {
	nc.env.tick()
}

// tickTimer runs once per CPU cycle. Each timer expiry shifts the LFSR right
// by one, feeding bit0 XOR (bit1 or bit6) back into bit 14.
func (nc *noiseChannel) tickTimer() {
	if nc.timerCounter != 0 {
		nc.timerCounter--
		return
	}
	nc.timerCounter = nc.timer

	tap := uint(1)
	if nc.mode {
		tap = 6
	}
	feedback := (nc.lfsr & 0x01) ^ ((nc.lfsr >> tap) & 0x01)
	nc.lfsr = (nc.lfsr >> 1) | (feedback << 14)
}

func (nc *noiseChannel) sample() float64 {
	if !nc.lenCounter.active() {
		return 0
	}
	if nc.lfsr&0x01 != 0 {
		return 0
	}
	return float64(nc.env.level())
}

func (nc *noiseChannel) reset() {
	*nc = noiseChannel{lfsr: 1}
}
