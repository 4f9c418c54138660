package apu

// lengthCounter silences its channel after a register-programmed duration.
// It is ticked by half-frame events and decrements only while the halt flag
// is clear.
type lengthCounter struct {
	enabled bool
	halt    bool
	counter uint8
}

// load reloads the counter from the lookup table. idx is the 5-bit index
// taken from bits 3-7 of the length register.
func (lc *lengthCounter) load(idx uint8) {
	lc.counter = lengthLUT[idx&0x1F]
}

func (lc *lengthCounter) tick() {
	if !lc.halt && lc.counter > 0 {
		lc.counter--
	}
}

// setEnabled clears the counter when the channel is disabled via $4015.
func (lc *lengthCounter) setEnabled(enabled bool) {
	lc.enabled = enabled
	if !enabled {
		lc.counter = 0
	}
}

func (lc *lengthCounter) active() bool {
	return lc.enabled && lc.counter > 0
}
