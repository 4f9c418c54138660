package apu

import (
	"testing"
)

func TestTriangleSequencerGating(t *testing.T) {
	var tc triangleChannel
	tc.setEnabled(true)
	tc.writeControl(0x05) // linear reload 5.
	tc.writeTimerLow(0x00)
	tc.writeTimerHigh(0x08) // timer 0, length 254, sets reload flag.

	// Linear counter is still 0: the sequencer must not advance.
	tc.tickTimer()
	if tc.pos != 0 {
		t.Fatal("sequencer advanced with linear counter 0")
	}

	tc.tickLinear() // reload flag set: counter = 5.
	if tc.linearCounter != 5 {
		t.Fatalf("linear counter = %d, want 5", tc.linearCounter)
	}

	// Timer 0 expires every cycle; both counters non-zero now.
	tc.tickTimer()
	if tc.pos != 1 {
		t.Errorf("pos = %d, want 1", tc.pos)
	}

	// Sequence position wraps at 32.
	for n := 0; n < 31; n++ {
		tc.tickTimer()
	}
	if tc.pos != 0 {
		t.Errorf("pos = %d, want 0 after full sequence", tc.pos)
	}
}

func TestTriangleLinearReloadFlag(t *testing.T) {
	var tc triangleChannel
	tc.writeControl(0x07) // control clear, reload 7.
	tc.reloadFlag = true

	// Without the control flag, the reload flag clears after one tick and
	// the counter starts decrementing.
	tc.tickLinear()
	if tc.reloadFlag {
		t.Fatal("reload flag not auto-cleared")
	}
	tc.tickLinear()
	if tc.linearCounter != 6 {
		t.Errorf("linear counter = %d, want 6", tc.linearCounter)
	}

	// With the control flag set, the reload flag sticks and the counter
	// keeps reloading.
	tc.writeControl(0x87)
	tc.reloadFlag = true
	tc.tickLinear()
	tc.tickLinear()
	if !tc.reloadFlag {
		t.Fatal("control flag must suppress reload flag clearing")
	}
	if tc.linearCounter != 7 {
		t.Errorf("linear counter = %d, want 7", tc.linearCounter)
	}
}

func TestTriangleSampleMuting(t *testing.T) {
	var tc triangleChannel
	tc.setEnabled(true)
	tc.writeControl(0x7F)
	tc.writeTimerHigh(0x08)
	tc.tickLinear()
	tc.pos = 3

	if got := tc.sample(); got != float64(triangleSequence[3]) {
		t.Errorf("sample = %v, want %d", got, triangleSequence[3])
	}

	tc.linearCounter = 0
	if got := tc.sample(); got != 0 {
		t.Errorf("sample = %v, want 0 (linear counter 0)", got)
	}

	tc.tickLinear() // reload flag still set, counter back to 0x7F... reload.
	tc.setEnabled(false)
	if got := tc.sample(); got != 0 {
		t.Errorf("sample = %v, want 0 (disabled)", got)
	}
}

func TestTriangleControlHaltsLength(t *testing.T) {
	var tc triangleChannel
	tc.setEnabled(true)
	tc.writeTimerHigh(0x08) // length 254.
	tc.writeControl(0x80)   // control set: length halted.

	tc.tickLength()
	if tc.lenCounter.counter != 254 {
		t.Errorf("length = %d, want 254 (halted)", tc.lenCounter.counter)
	}

	tc.writeControl(0x00)
	tc.tickLength()
	if tc.lenCounter.counter != 253 {
		t.Errorf("length = %d, want 253", tc.lenCounter.counter)
	}
}
