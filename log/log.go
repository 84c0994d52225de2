// Package log provides loggers for graph components.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable that enables debug level.
const DebugEnv = "DSP_DEBUG"

var debug bool

// Logger is a global interface for dsp loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Silent returns a logger that discards everything.
func Silent() Logger {
	return silent{}
}

type silent struct{}

func (silent) Debug(...interface{}) {}

func (silent) Info(...interface{}) {}
