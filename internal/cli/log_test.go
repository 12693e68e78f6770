package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathmaker/pkg/observability"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/store"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("rendered lab.map")
	if !strings.Contains(buf.String(), "rendered lab.map (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	registerLogHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	st := store.NewMemoryStore()
	b := pathgraph.NewBundle()
	b.CreatePath(pathgraph.NewWaypoint(1, 2))
	if _, err := store.Save(ctx, st, "lab", b); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, st, "missing"); err == nil {
		t.Fatal("expected load of a missing map to fail")
	}

	out := buf.String()
	for _, want := range []string{"saved", "map=lab.map", "load failed", "missing.map"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
