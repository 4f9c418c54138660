package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTrace = `{
  "memory": "qrvM",
  "events": [
    {"cycle": 0, "addr": 16384, "value": 31},
    {"cycle": 0, "addr": 16386, "value": 64},
    {"cycle": 100, "addr": 16387, "value": 8},
    {"cycle": 3650, "addr": 16405, "value": 1}
  ]
}`

func TestDecode(t *testing.T) {
	got, err := Decode(strings.NewReader(sampleTrace))
	if err != nil {
		t.Fatal(err)
	}

	want := &Trace{
		Memory: []byte{0xAA, 0xBB, 0xCC},
		Events: []Event{
			{Cycle: 0, Addr: 0x4000, Value: 0x1F},
			{Cycle: 0, Addr: 0x4002, Value: 0x40},
			{Cycle: 100, Addr: 0x4003, Value: 0x08},
			{Cycle: 3650, Addr: 0x4015, Value: 0x01},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownFieldsSkipped(t *testing.T) {
	const in = `{"title": "x", "events": [{"cycle": 1, "addr": 2, "value": 3, "note": "y"}]}`
	got, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Event{{Cycle: 1, Addr: 2, Value: 3}}
	if diff := cmp.Diff(want, got.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsUnorderedEvents(t *testing.T) {
	const in = `{"events": [{"cycle": 10, "addr": 0, "value": 0}, {"cycle": 5, "addr": 0, "value": 0}]}`
	if _, err := Decode(strings.NewReader(in)); err == nil {
		t.Error("out-of-order events must not decode")
	}
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	for _, in := range []string{
		`{"events": [{"cycle": 0, "addr": 65536, "value": 0}]}`,
		`{"events": [{"cycle": 0, "addr": 0, "value": 256}]}`,
	} {
		if _, err := Decode(strings.NewReader(in)); err == nil {
			t.Errorf("decoded invalid trace %s", in)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	want := &Trace{
		Memory: []byte{1, 2, 3, 4, 5},
		Events: []Event{
			{Cycle: 0, Addr: 0x4010, Value: 0x4F},
			{Cycle: 5000, Addr: 0x4015, Value: 0x10},
		},
	}

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBankMapping(t *testing.T) {
	tr := &Trace{Memory: []byte{10, 20, 30}}
	b := tr.Bank()

	if got := b.Read8(0x8000); got != 10 {
		t.Errorf("Read8(0x8000) = %d, want 10", got)
	}
	if got := b.Read8(0x8004); got != 20 {
		t.Errorf("Read8(0x8004) = %d, want 20 (image repeats)", got)
	}
	if got := b.Read8(0x4000); got != 0 {
		t.Errorf("Read8(0x4000) = %d, want 0 (below the bank)", got)
	}

	empty := (&Trace{}).Bank()
	if got := empty.Read8(0x9000); got != 0 {
		t.Errorf("empty bank Read8 = %d, want 0", got)
	}
}

func TestDuration(t *testing.T) {
	tr := &Trace{Events: []Event{{Cycle: 1789773}}}
	if got := tr.Duration().Seconds(); got < 0.99 || got > 1.01 {
		t.Errorf("Duration = %vs, want ~1s", got)
	}

	if got := (&Trace{}).Duration(); got != 0 {
		t.Errorf("empty trace Duration = %v, want 0", got)
	}
}
