package ui

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type Logger struct {
	Debug bool
	l     *log.Logger
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	l.SetLevel(log.InfoLevel)
	if debug {
		l.SetLevel(log.DebugLevel)
	}

	return &Logger{Debug: debug, l: l}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.l.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.l.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.l.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.l.Errorf(format, args...)
}
