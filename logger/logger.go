// Package logger provides the small logging surface used by the codec and
// its commands.
package logger

import "log"

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l *log.Logger
}

// New returns a Logger writing through the standard library's default logger.
func New() Logger { return &stdLogger{l: log.Default()} }

// With returns a Logger writing through l.
func With(l *log.Logger) Logger { return &stdLogger{l: l} }

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
