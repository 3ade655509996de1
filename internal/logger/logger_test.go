package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zapcore.InfoLevel)
	log.Debug("hidden")
	log.Info("shown", zap.String("stage", "inline"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "inline") {
		t.Errorf("info entry missing: %q", out)
	}
}

func TestLevelVar(t *testing.T) {
	var level zapcore.Level
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	LevelVar(fs, &level, "log-level", zapcore.WarnLevel, "log level")

	if level != zapcore.WarnLevel {
		t.Fatalf("default level = %v, want warn", level)
	}
	if err := fs.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if level != zapcore.DebugLevel {
		t.Errorf("level = %v, want debug", level)
	}
	if err := fs.Parse([]string{"--log-level", "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
