package apu

import (
	"nesapu/emu/log"
)

// triangleChannel steps through a fixed 32-entry sequence. The timer is
// clocked every CPU cycle and advances the sequencer only while both the
// length counter and the linear counter are non-zero.
//
//	+---------+    +---------+
//	|LinearCtr|    | Length  |
//	+---------+    +---------+
//	     |              |
//	     v              v
//	+---------+        |\             |\         +---------+    +---------+
//	|  Timer  |------->| >----------->| >------->|Sequencer|--->|   DAC   |
//	+---------+        |/             |/         +---------+    +---------+
type triangleChannel struct {
	lenCounter   lengthCounter
	timer        uint16
	timerCounter uint16

	linearCounter uint8
	linearReload  uint8
	linearCtrl    bool
	reloadFlag    bool

	pos uint8 // current position in triangleSequence.
}

// $4008
func (tc *triangleChannel) writeControl(val uint8) {
	tc.linearCtrl = val&0x80 != 0
	tc.linearReload = val & 0x7F

	// The control bit doubles as the length counter halt flag.
	tc.lenCounter.halt = tc.linearCtrl

	log.ModAPU.DebugZ("write triangle linear").
		Hex8("val", val).
		Bool("ctrl", tc.linearCtrl).
		Uint8("reload", tc.linearReload).
		End()
}

// $400A
func (tc *triangleChannel) writeTimerLow(val uint8) {
	tc.timer = (tc.timer & 0xFF00) | uint16(val)
}

// $400B
func (tc *triangleChannel) writeTimerHigh(val uint8) {
	tc.timer = (tc.timer & 0x00FF) | (uint16(val&0x07) << 8)
	tc.lenCounter.load(val >> 3)
	tc.reloadFlag = true

	log.ModAPU.DebugZ("write triangle length").
		Hex8("val", val).
		Uint16("timer", tc.timer).
		End()
}

func (tc *triangleChannel) setEnabled(enabled bool) {
	tc.lenCounter.setEnabled(enabled)
}

func (tc *triangleChannel) tickLength() {
	tc.lenCounter.tick()
}

// tickLinear runs on quarter-frame events. The reload flag clears itself
// unless the control flag holds it.
func (tc *triangleChannel) tickLinear() {
	if tc.reloadFlag {
		tc.linearCounter = tc.linearReload
	} else if tc.linearCounter > 0 {
		tc.linearCounter--
	}
	if !tc.linearCtrl {
		tc.reloadFlag = false
	}
}

// tickTimer runs once per CPU cycle.
func (tc *triangleChannel) tickTimer() {
	if tc.timerCounter == 0 {
		tc.timerCounter = tc.timer
		if tc.lenCounter.counter > 0 && tc.linearCounter > 0 {
			tc.pos = (tc.pos + 1) & 0x1F
		}
	} else {
		tc.timerCounter--
	}
}

func (tc *triangleChannel) sample() float64 {
	if !tc.lenCounter.active() || tc.linearCounter == 0 {
		return 0
	}
	return float64(triangleSequence[tc.pos])
}

func (tc *triangleChannel) reset() {
	*tc = triangleChannel{}
}
