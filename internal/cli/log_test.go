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
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at warn level", log.WarnLevel, func(l *log.Logger) { l.Info("test") }, false},
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
	prog := newProgress(newLogger(&buf, log.DebugLevel))

	prog.step("wrote file", "path", "family.svg")
	prog.step("wrote file", "path", "family.png")
	prog.donef("Rendered %d file(s)", 2)

	out := buf.String()
	for _, want := range []string{"path=family.png", "step=2", "Rendered 2 file(s) ("} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}

	treeLogger(ctx, "smith", "file").Info("opened")
	if out := buf.String(); !strings.Contains(out, "tree=smith") || !strings.Contains(out, "store=file") {
		t.Errorf("tree logger output = %q", out)
	}
}

func TestVerboseFlag(t *testing.T) {
	testEnv(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &bytes.Buffer{}
	if err := c.Execute(context.Background(), []string{"--verbose", "--store", "memory", "list"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "DEBU") {
		t.Errorf("--verbose produced no debug output: %q", logs.String())
	}
}
