package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (lvl Level) logrus() logrus.Level {
	return logrus.Level(lvl)
}

func logger() *logrus.Logger {
	return logrus.StandardLogger()
}

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable turns off all log output, including warnings and errors.
func Disable() {
	logrus.SetOutput(io.Discard)
}
