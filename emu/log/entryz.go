package log

import (
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is a log entry under construction. Fields are accumulated in a
// fixed, pooled buffer so that disabled entries cost nothing but a nil check.
// A nil *EntryZ is valid: every method is a no-op on it.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [16]ZField
	zfidx int
}

var entryzPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	e := entryzPool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

func (e *EntryZ) field(key string) *ZField {
	if e.zfidx >= len(e.zfbuf) {
		return &ZField{}
	}
	f := &e.zfbuf[e.zfidx]
	e.zfidx++
	f.Key = key
	return f
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeBool
		f.Boolean = val
	}
	return e
}

func (e *EntryZ) String(key string, val string) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeString
		f.String = val
	}
	return e
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeInt
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeUint
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint16(key string, val uint16) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeUint
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint32(key string, val uint32) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeUint
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint64(key string, val uint64) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeUint
		f.Integer = val
	}
	return e
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeHex8
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeHex16
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Float64(key string, val float64) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeFloat
		f.Float = val
	}
	return e
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeError
		f.Error = err
	}
	return e
}

func (e *EntryZ) Duration(key string, val time.Duration) *EntryZ {
	if e != nil {
		f := e.field(key)
		f.Type = FieldTypeDuration
		f.Duration = val
	}
	return e
}

// End emits the entry and recycles it. The entry must not be used afterwards.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}

	entryzPool.Put(e)
}
