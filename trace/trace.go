// Package trace reads and writes register traces: recorded streams of timed
// APU register writes, with an optional DMC sample memory image. A trace is
// enough to replay a tune through the synthesis core without a CPU.
//
// The format is JSON:
//
//	{
//	  "memory": "<base64, mapped at $8000-$FFFF>",
//	  "events": [{"cycle": 0, "addr": 16387, "value": 8}, ...]
//	}
package trace

import (
	"fmt"
	"io"
	"time"

	"github.com/go-faster/jx"

	"nesapu/apu"
)

// Event is one register write, stamped with the CPU cycle at which it
// occurred. Events are stored in nondecreasing cycle order.
type Event struct {
	Cycle uint64
	Addr  uint16
	Value uint8
}

type Trace struct {
	// Memory is the DMC sample image, mapped at $8000 and repeated to fill
	// the bank. May be empty.
	Memory []byte
	Events []Event
}

// Duration converts the last event's cycle stamp to wall time at the NTSC
// CPU clock.
func (t *Trace) Duration() time.Duration {
	if len(t.Events) == 0 {
		return 0
	}
	last := t.Events[len(t.Events)-1].Cycle
	return time.Duration(float64(last) / apu.CPUClock * float64(time.Second))
}

// Bank returns the sample memory as a bus read capability for the DMC.
func (t *Trace) Bank() *Bank {
	return &Bank{data: t.Memory}
}

// Bank implements apu.MemoryReader over the trace's sample image. Addresses
// below $8000 read zero; the image repeats across the bank.
type Bank struct {
	data []byte
}

func (b *Bank) Read8(addr uint16) uint8 {
	if addr < 0x8000 || len(b.data) == 0 {
		return 0
	}
	return b.data[int(addr-0x8000)%len(b.data)]
}

// Decode reads a trace from r, validating event ordering and address range.
func Decode(r io.Reader) (*Trace, error) {
	d := jx.Decode(r, 4096)
	t := &Trace{}

	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "memory":
			data, err := d.Base64()
			if err != nil {
				return fmt.Errorf("memory: %w", err)
			}
			t.Memory = data
			return nil
		case "events":
			return d.Arr(func(d *jx.Decoder) error {
				ev, err := decodeEvent(d)
				if err != nil {
					return err
				}
				if n := len(t.Events); n > 0 && ev.Cycle < t.Events[n-1].Cycle {
					return fmt.Errorf("event %d: cycle %d out of order", n, ev.Cycle)
				}
				t.Events = append(t.Events, ev)
				return nil
			})
		}
		return d.Skip()
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func decodeEvent(d *jx.Decoder) (Event, error) {
	var ev Event
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "cycle":
			v, err := d.UInt64()
			ev.Cycle = v
			return err
		case "addr":
			v, err := d.UInt32()
			if err != nil {
				return err
			}
			if v > 0xFFFF {
				return fmt.Errorf("address %#x out of range", v)
			}
			ev.Addr = uint16(v)
			return nil
		case "value":
			v, err := d.UInt32()
			if err != nil {
				return err
			}
			if v > 0xFF {
				return fmt.Errorf("value %#x out of range", v)
			}
			ev.Value = uint8(v)
			return nil
		}
		return d.Skip()
	})
	return ev, err
}

// Encode writes the trace to w.
func (t *Trace) Encode(w io.Writer) error {
	var e jx.Encoder

	e.Obj(func(e *jx.Encoder) {
		if len(t.Memory) > 0 {
			e.Field("memory", func(e *jx.Encoder) {
				e.Base64(t.Memory)
			})
		}
		e.Field("events", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, ev := range t.Events {
					e.Obj(func(e *jx.Encoder) {
						e.Field("cycle", func(e *jx.Encoder) { e.UInt64(ev.Cycle) })
						e.Field("addr", func(e *jx.Encoder) { e.UInt32(uint32(ev.Addr)) })
						e.Field("value", func(e *jx.Encoder) { e.UInt32(uint32(ev.Value)) })
					})
				}
			})
		})
	})

	_, err := w.Write(e.Bytes())
	return err
}
