package logging

import "testing"

type recordingLogger struct {
	lastLevel string
	lastMsg   string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.record("debug", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.record("info", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.record("warn", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.record("error", format, args...) }

func (r *recordingLogger) record(level, format string, args ...any) {
	r.lastLevel = level
	r.lastMsg = format
	_ = args
}

func TestSetLoggerOverridesSink(t *testing.T) {
	previous := get()
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(previous)

	Warnf("reader %d stopped", 3)
	if rec.lastLevel != "warn" {
		t.Fatalf("expected warn level, got %q", rec.lastLevel)
	}
	if rec.lastMsg != "reader %d stopped" {
		t.Fatalf("expected format string preserved, got %q", rec.lastMsg)
	}
}
