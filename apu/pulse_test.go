package apu

import (
	"testing"
)

func TestEnvelopeDecayLoop(t *testing.T) {
	var env envelope
	env.init(0x20) // loop set, constant volume clear, volume (period) 0.
	env.restart()

	env.tick()
	if env.decay != 15 {
		t.Fatalf("decay after restart = %d, want 15", env.decay)
	}

	// Period 0 makes the divider wrap every tick, so decay steps down once
	// per tick, then loops back to 15.
	for want := 14; want >= 0; want-- {
		env.tick()
		if int(env.decay) != want {
			t.Fatalf("decay = %d, want %d", env.decay, want)
		}
	}
	env.tick()
	if env.decay != 15 {
		t.Errorf("decay after loop = %d, want 15", env.decay)
	}
}

func TestEnvelopeDividerPeriod(t *testing.T) {
	var env envelope
	env.init(0x22) // loop, volume (period) 2.
	env.restart()
	env.tick()

	// With period 2 the decay level steps once every volume+1 = 3 ticks.
	for i := 0; i < 2; i++ {
		env.tick()
		if env.decay != 15 {
			t.Fatalf("tick %d: decay = %d, want 15", i, env.decay)
		}
	}
	env.tick()
	if env.decay != 14 {
		t.Errorf("decay = %d, want 14", env.decay)
	}
}

func TestEnvelopeConstantVolume(t *testing.T) {
	var env envelope
	env.init(0x17) // constant volume 7.
	env.restart()
	env.tick()

	if env.level() != 7 {
		t.Errorf("level = %d, want 7", env.level())
	}
}

func TestSweepTargetInRange(t *testing.T) {
	pc := pulseChannel{timer: 1024}
	pc.writeSweep(0x81) // enabled, period 0, shift 1.

	pc.tickSweep() // reload tick, applies immediately since enabled.
	if pc.sweepMute {
		t.Fatal("sweep muted, target 1536 is in range")
	}
	if pc.timer != 1536 {
		t.Errorf("timer = %d, want 1536", pc.timer)
	}

	// 1536 + 768 = 2304 > $7FF: channel mutes, timer must not change.
	pc.tickSweep()
	if !pc.sweepMute {
		t.Fatal("sweep not muted, target 2304 overflows")
	}
	if pc.timer != 1536 {
		t.Errorf("muted sweep wrote timer back: %d", pc.timer)
	}
}

func TestSweepLowTimerMutes(t *testing.T) {
	pc := pulseChannel{timer: 4}
	pc.writeSweep(0x81)
	pc.tickSweep()
	if !pc.sweepMute {
		t.Error("timer < 8 must mute the channel")
	}
}

func TestSweepOnesComplement(t *testing.T) {
	// Negative sweep subtracts one extra on pulse 1 only.
	p1 := pulseChannel{timer: 1024, onesComplement: true}
	p1.writeSweep(0x8A) // enabled, negate, shift 2.
	p1.tickSweep()
	if p1.timer != 767 {
		t.Errorf("pulse1 timer = %d, want 767", p1.timer)
	}

	p2 := pulseChannel{timer: 1024}
	p2.writeSweep(0x8A)
	p2.tickSweep()
	if p2.timer != 768 {
		t.Errorf("pulse2 timer = %d, want 768", p2.timer)
	}
}

func TestSweepDisabledClearsMute(t *testing.T) {
	pc := pulseChannel{timer: 1024, sweepMute: true}
	pc.writeSweep(0x00)
	pc.tickSweep()
	if pc.sweepMute {
		t.Error("disabled sweep must clear the mute flag")
	}
}

func TestPulseSampleGating(t *testing.T) {
	var pc pulseChannel
	pc.writeControl(0x1F) // duty 0, constant volume 15.
	pc.setEnabled(true)
	pc.writeTimerLow(0x40)
	pc.writeTimerHigh(0x08) // length index 1 -> 254.

	if got := pc.sample(44100); got == 0 {
		// Phase starts at 0, inside the 12.5% duty window.
		// One sample cannot wrap past it with timer 64.
		t.Error("enabled pulse with phase in duty window must be audible")
	}

	pc.setEnabled(false)
	if got := pc.sample(44100); got != 0 {
		t.Errorf("disabled pulse sample = %v, want 0", got)
	}
}

func TestPulseLowTimerSilent(t *testing.T) {
	var pc pulseChannel
	pc.writeControl(0x1F)
	pc.setEnabled(true)
	pc.writeTimerLow(0x04) // timer 4 < 8.
	pc.writeTimerHigh(0x08)

	if got := pc.sample(44100); got != 0 {
		t.Errorf("sample = %v, want 0 (timer < 8)", got)
	}
}
