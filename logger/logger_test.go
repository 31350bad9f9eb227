package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStdLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := With(log.New(&buf, "", 0))

	l.Infof("wrote %d bits", 42)
	l.Errorf("failed: %s", "boom")

	got := buf.String()
	if !strings.Contains(got, "[INFO] wrote 42 bits\n") {
		t.Errorf("missing info line in %q", got)
	}
	if !strings.Contains(got, "[ERROR] failed: boom\n") {
		t.Errorf("missing error line in %q", got)
	}
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	l.Infof("ignored %d", 1)
	l.Errorf("ignored %d", 2)
}
