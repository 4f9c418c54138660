package apu

import (
	"nesapu/emu/log"
)

// MemoryReader is the capability the DMC uses to fetch sample bytes from the
// CPU bus. Reads must have no side effects visible to the APU.
type MemoryReader interface {
	Read8(addr uint16) uint8
}

// dmcChannel plays back 1-bit delta-encoded samples streamed from memory one
// byte at a time. Two units overlap: the DMA reader keeps a one-byte buffer
// full, and the output unit shifts bits out of it, nudging a 7-bit DAC level
// up or down.
//
//	+----------+    +---------+
//	|DMA Reader|    |  Timer  |
//	+----------+    +---------+
//	     |               |
//	     v               v
//	+----------+    +---------+     +---------+     +---------+
//	|  Buffer  |----| Output  |---->| Counter |---->|   DAC   |
//	+----------+    +---------+     +---------+     +---------+
type dmcChannel struct {
	mem MemoryReader

	irqEnabled bool
	loop       bool
	enabled    bool

	sampleAddr uint16
	sampleLen  uint16

	curAddr   uint16
	remaining uint16

	buf          uint8
	bufEmpty     bool
	shiftReg     uint8
	bitsLeft     uint8
	outputLevel  uint8
	timer        uint16
	timerCounter uint16
}

// $4010
func (dc *dmcChannel) writeControl(val uint8) {
	dc.irqEnabled = val&0x80 != 0
	dc.loop = val&0x40 != 0
	dc.timer = dmcPeriodLUT[val&0x0F]

	log.ModAPU.DebugZ("write dmc control").
		Hex8("val", val).
		Bool("loop", dc.loop).
		Uint16("period", dc.timer).
		End()
}

// $4011: direct DAC load, independent of DMA.
func (dc *dmcChannel) writeDirectLoad(val uint8) {
	dc.outputLevel = val & 0x7F

	log.ModAPU.DebugZ("write dmc load").Hex8("val", val).End()
}

// $4012
func (dc *dmcChannel) writeSampleAddress(val uint8) {
	dc.sampleAddr = 0xC000 | (uint16(val) << 6)
}

// $4013
func (dc *dmcChannel) writeSampleLength(val uint8) {
	dc.sampleLen = uint16(val)*16 + 1
}

func (dc *dmcChannel) restart() {
	dc.curAddr = dc.sampleAddr
	dc.remaining = dc.sampleLen
}

func (dc *dmcChannel) setEnabled(enabled bool) {
	dc.enabled = enabled
	if !enabled {
		dc.remaining = 0
	} else if dc.remaining == 0 {
		dc.restart()
	}
}

// fetch refills the one-byte sample buffer from memory. Runs every cycle;
// does nothing unless the buffer is empty and bytes remain.
func (dc *dmcChannel) fetch() {
	if !dc.bufEmpty || dc.remaining == 0 {
		return
	}
	if dc.mem != nil {
		dc.buf = dc.mem.Read8(dc.curAddr)
	} else {
		dc.buf = 0
	}
	dc.bufEmpty = false

	dc.curAddr++
	if dc.curAddr == 0 {
		// Address wraps to the start of the sample bank.
		dc.curAddr = 0x8000
	}

	dc.remaining--
	if dc.remaining == 0 && dc.loop {
		dc.restart()
	}
}

// tickTimer runs once per CPU cycle. On expiry the output unit reloads its
// shift register from the buffer if exhausted, then shifts out one bit,
// moving the DAC level by 2 with saturation. An empty buffer skips the tick
// without touching the level.
func (dc *dmcChannel) tickTimer() {
	if dc.timerCounter != 0 {
		dc.timerCounter--
		return
	}
	dc.timerCounter = dc.timer

	if dc.bitsLeft == 0 {
		if dc.bufEmpty {
			return
		}
		dc.shiftReg = dc.buf
		dc.bufEmpty = true
		dc.bitsLeft = 8
	}

	if dc.shiftReg&0x01 != 0 {
		if dc.outputLevel <= 125 {
			dc.outputLevel += 2
		}
	} else {
		if dc.outputLevel >= 2 {
			dc.outputLevel -= 2
		}
	}
	dc.shiftReg >>= 1
	dc.bitsLeft--
}

func (dc *dmcChannel) sample() float64 {
	return float64(dc.outputLevel)
}

func (dc *dmcChannel) status() bool {
	return dc.remaining > 0
}

func (dc *dmcChannel) reset() {
	mem := dc.mem
	*dc = dmcChannel{
		mem:        mem,
		bufEmpty:   true,
		sampleAddr: 0xC000,
		sampleLen:  1,
		timer:      dmcPeriodLUT[0],
	}
}
