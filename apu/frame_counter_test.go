package apu

import (
	"testing"
)

func countEvents(fc *frameCounter, cycles int) (quarters, halves int) {
	for n := 0; n < cycles; n++ {
		switch fc.tick() {
		case quarterFrame:
			quarters++
		case halfFrame:
			quarters++
			halves++
		}
	}
	return quarters, halves
}

func TestFrameCounter4Step(t *testing.T) {
	var fc frameCounter

	quarters, halves := countEvents(&fc, 14915)
	if quarters != 4 {
		t.Errorf("quarter-frame events = %d, want 4", quarters)
	}
	if halves != 2 {
		t.Errorf("half-frame events = %d, want 2", halves)
	}
	if fc.cycle != 0 {
		t.Errorf("counter = %d, want 0 after full period", fc.cycle)
	}
}

func TestFrameCounter4StepPeriodic(t *testing.T) {
	var fc frameCounter

	// Two consecutive periods must fire identically.
	for period := 0; period < 2; period++ {
		quarters, halves := countEvents(&fc, 14915)
		if quarters != 4 || halves != 2 {
			t.Errorf("period %d: events = %d/%d, want 4/2", period, quarters, halves)
		}
	}
}

func TestFrameCounter5Step(t *testing.T) {
	var fc frameCounter
	fc.writeControl(0x80)

	quarters, halves := countEvents(&fc, 18641)
	if quarters != 4 {
		t.Errorf("quarter-frame events = %d, want 4", quarters)
	}
	if halves != 2 {
		t.Errorf("half-frame events = %d, want 2", halves)
	}
	if fc.cycle != 0 {
		t.Errorf("counter = %d, want 0 after full period", fc.cycle)
	}
}

func TestFrameCounterModeWrite(t *testing.T) {
	var fc frameCounter
	fc.cycle = 1234

	// Selecting 5-step mode fires an immediate quarter+half frame and
	// resets the counter.
	if ft := fc.writeControl(0x80); ft != halfFrame {
		t.Errorf("writeControl(0x80) = %v, want halfFrame", ft)
	}
	if fc.cycle != 0 {
		t.Errorf("counter = %d, want 0", fc.cycle)
	}

	// 4-step mode does not.
	if ft := fc.writeControl(0x00); ft != noFrame {
		t.Errorf("writeControl(0x00) = %v, want noFrame", ft)
	}
}

func TestFrameCounterInhibitFlag(t *testing.T) {
	var fc frameCounter
	fc.writeControl(0x40)
	if !fc.inhibitIRQ {
		t.Error("inhibit flag not stored")
	}
}
