package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestIsValidLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", " warn ", "fatal"} {
		if !IsValidLogLevel(level) {
			t.Fatalf("expected %q to be valid", level)
		}
	}
	for _, level := range []string{"", "verbose", "trace"} {
		if IsValidLogLevel(level) {
			t.Fatalf("expected %q to be invalid", level)
		}
	}
}

func TestBuildLogger_Levels(t *testing.T) {
	tests := []struct {
		level, env string
		want       zapcore.Level
	}{
		{level: "debug", env: "dev", want: zapcore.DebugLevel},
		{level: "WARN", env: "prod", want: zapcore.WarnLevel},
		{level: "", env: "", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		logger, err := BuildLogger(tt.level, tt.env)
		if err != nil {
			t.Fatalf("BuildLogger(%q, %q): %v", tt.level, tt.env, err)
		}
		if !logger.Core().Enabled(tt.want) {
			t.Fatalf("level %q: expected %s enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
			t.Fatalf("level %q: expected %s disabled", tt.level, tt.want-1)
		}
	}
}

func TestParseLevel_InvalidFallsBackToInfo(t *testing.T) {
	var warn bytes.Buffer
	level := parseLevel("loud", &warn)
	if level.Level() != zapcore.InfoLevel {
		t.Fatalf("expected info fallback, got %s", level.Level())
	}
	if !strings.Contains(warn.String(), `invalid log level "loud"`) {
		t.Fatalf("expected warning, got %q", warn.String())
	}
}

func TestNewWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "debug")
	logger.Debug("contact: validation pass")
	if !strings.Contains(buf.String(), "contact: validation pass") {
		t.Fatalf("expected debug entry, got %q", buf.String())
	}
}
