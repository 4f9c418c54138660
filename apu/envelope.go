package apu

// envelope is the decaying-volume generator shared by the pulse and noise
// channels. The divider is clocked by quarter-frame events; each time it
// wraps, the decay level steps down from 15, looping back only when the
// loop flag is set.
type envelope struct {
	constantVolume bool
	volume         uint8 // divider period, and the level in constant mode
	loop           bool

	start   bool
	divider uint8
	decay   uint8
}

// init decodes the volume/control register ($4000/$4004/$400C).
func (env *envelope) init(val uint8) {
	env.loop = val&0x20 != 0
	env.constantVolume = val&0x10 != 0
	env.volume = val & 0x0F
}

// restart makes the next quarter-frame tick reload decay=15 and the divider.
func (env *envelope) restart() {
	env.start = true
}

func (env *envelope) tick() {
	if env.start {
		env.start = false
		env.decay = 15
		env.divider = env.volume
		return
	}
	if env.divider == 0 {
		env.divider = env.volume
		if env.decay > 0 {
			env.decay--
		} else if env.loop {
			env.decay = 15
		}
	} else {
		env.divider--
	}
}

func (env *envelope) level() uint8 {
	if env.constantVolume {
		return env.volume
	}
	return env.decay
}
