package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("event applied") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("event dropped") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("event dropped") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("stale cache") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerReportsCallerAtDebug(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.DebugLevel).Debug("dispatch")
	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("debug output %q lacks caller", buf.String())
	}

	buf.Reset()
	newLogger(&buf, log.InfoLevel).Info("dispatch")
	if strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("info output %q reports caller", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Resolved state.yaml", "rows", 4)

	out := buf.String()
	for _, want := range []string{"Resolved state.yaml", "elapsed=", "rows=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("snapshot saved")
	if !strings.Contains(buf.String(), "snapshot saved") {
		t.Error("attached logger did not write to its buffer")
	}
}
