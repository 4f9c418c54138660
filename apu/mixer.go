package apu

import (
	"math"
)

// Output stage low-pass cutoff, in Hz. Approximates the console's RC filter.
const filterCutoff = 12000.0

// mixer combines the five channel DAC levels through the console's
// non-linear mixing network, then runs the result through a one-pole
// low-pass filter. The filter state persists across samples and is part of
// the APU state.
type mixer struct {
	filter float64
}

// mix takes raw DAC levels (pulses and noise 0-15, triangle 0-15, dmc 0-127)
// and returns one output sample.
func (m *mixer) mix(p1, p2, tri, noise, dmc, sampleRate float64) float32 {
	var pulseOut float64
	if p1+p2 > 0 {
		pulseOut = 95.88 / ((8128.0 / (p1 + p2)) + 100.0)
	}

	var tndOut float64
	tnd := tri/8227.0 + noise/12241.0 + dmc/22638.0
	if tnd > 0 {
		tndOut = 159.79 / ((1.0 / tnd) + 100.0)
	}

	mixed := pulseOut + tndOut

	rc := 1.0 / (2.0 * math.Pi * filterCutoff)
	dt := 1.0 / sampleRate
	alpha := dt / (rc + dt)
	m.filter += alpha * (mixed - m.filter)
	return float32(m.filter)
}

func (m *mixer) reset() {
	m.filter = 0
}
