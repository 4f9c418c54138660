package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"nesapu/apu"
	"nesapu/audio"
	"nesapu/emu/log"
	"nesapu/trace"
)

// tailTime keeps the pipeline running after the last register write, long
// enough for decaying envelopes and looping channels to be heard.
const tailTime = 2 * time.Second

func loadTrace(path string) *trace.Trace {
	f, err := os.Open(path)
	checkf(err, "failed to open trace %s", path)
	defer f.Close()

	t, err := trace.Decode(f)
	checkf(err, "failed to decode trace %s", path)
	return t
}

func play(cfg Config, cmd Play) error {
	t := loadTrace(cmd.TracePath)

	a := apu.New(t.Bank())
	player := audio.NewPlayer(a, cfg.Audio)
	if err := player.Start(); err != nil {
		// Playback degrades to silence rather than aborting; the APU still
		// runs so a later backend fix only needs a restart.
		log.ModEmu.ErrorZ("audio unavailable, playing silent").Error("err", err).End()
	}
	defer player.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return feed(ctx, a, t, cmd.Duration)
	})

	return g.Wait()
}

// feed replays the trace's register writes, pacing cycle stamps against the
// wall clock at the NTSC CPU rate. The producer advances emulated time on
// its own; the feeder only needs to hit the right wall-clock instants.
func feed(ctx context.Context, a *apu.APU, t *trace.Trace, maxDuration time.Duration) error {
	start := time.Now()

	deadline := time.Duration(0)
	if maxDuration > 0 {
		deadline = maxDuration
	}

	for _, ev := range t.Events {
		at := time.Duration(float64(ev.Cycle) / apu.CPUClock * float64(time.Second))
		if deadline > 0 && at > deadline {
			break
		}
		if err := sleepUntil(ctx, start.Add(at)); err != nil {
			return nil // interrupted
		}
		a.WriteReg(ev.Addr, ev.Value)
	}

	tail := tailTime
	if deadline > 0 {
		tail = deadline - time.Since(start)
		if tail <= 0 {
			return nil
		}
	}
	sleepUntil(ctx, time.Now().Add(tail))
	return nil
}

func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func traceInfos(path string) {
	t := loadTrace(path)

	fmt.Printf("events:   %d\n", len(t.Events))
	fmt.Printf("memory:   %d bytes\n", len(t.Memory))
	fmt.Printf("duration: %s\n", t.Duration().Round(time.Millisecond))
}
