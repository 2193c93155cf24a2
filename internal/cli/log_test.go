package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codelabs/pkg/observability"
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
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("test") }, true},
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
	newProgress(newLogger(&buf, log.InfoLevel)).done("Loaded 3 pages")

	out := buf.String()
	if !strings.Contains(out, "Loaded 3 pages (") {
		t.Errorf("progress output %q missing message and duration", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug logged at info level")
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug not logged after SetLogLevel")
	}
}

func TestLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	registerLogHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Articles().OnLoadComplete(ctx, "Git", 3, time.Second, nil)
	observability.Cache().OnCacheHit(ctx, "pages")
	observability.HTTP().OnResponse(ctx, "GET", "api.github.com", "/repos", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"article loaded", "cache hit", "http response"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q:\n%s", want, out)
		}
	}
}
