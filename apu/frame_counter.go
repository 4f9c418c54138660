package apu

import (
	"nesapu/emu/log"
)

type frameType uint8

const (
	noFrame frameType = iota
	quarterFrame
	halfFrame // implies a quarter-frame as well
)

// frameCounter is the shared sequencer clocking envelope, linear counter,
// length and sweep updates across all channels. It counts CPU cycles and
// fires quarter/half-frame events at fixed offsets, in one of two modes
// selected by $4017 bit 7.
//
//	mode 0 (4-step): 3729q 7457h 11186q 14915h+reset
//	mode 1 (5-step): 3729q 7457h 11186q 14915h 18641 reset
type frameCounter struct {
	cycle      uint32
	fiveStep   bool
	inhibitIRQ bool
}

// writeControl decodes $4017. Selecting 5-step mode immediately fires one
// quarter+half frame and resets the counter.
func (fc *frameCounter) writeControl(val uint8) frameType {
	fc.fiveStep = val&0x80 != 0
	fc.inhibitIRQ = val&0x40 != 0
	fc.cycle = 0

	log.ModAPU.DebugZ("write frame counter").
		Hex8("val", val).
		Bool("5-step", fc.fiveStep).
		Bool("inhibit irq", fc.inhibitIRQ).
		End()

	if fc.fiveStep {
		return halfFrame
	}
	return noFrame
}

// tick advances the counter by one CPU cycle and reports the event to fire,
// if any.
func (fc *frameCounter) tick() frameType {
	fc.cycle++
	switch fc.cycle {
	case 3729, 11186:
		return quarterFrame
	case 7457:
		return halfFrame
	case 14915:
		if !fc.fiveStep {
			fc.cycle = 0
		}
		return halfFrame
	case 18641:
		if fc.fiveStep {
			fc.cycle = 0
		}
	}
	return noFrame
}

func (fc *frameCounter) reset() {
	*fc = frameCounter{}
}
