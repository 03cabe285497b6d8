package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ValidLogLevels lists all valid zap log levels for validation.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// IsValidLogLevel checks if the given level string is a valid zap log level.
// Comparison is case-insensitive.
func IsValidLogLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, valid := range ValidLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// BuildLogger constructs a logger for the given level and env. "prod" selects
// the JSON production encoder; anything else the development console encoder.
// An invalid level falls back to info with a warning on stderr. Logs go to
// stderr so command output on stdout stays machine-readable.
func BuildLogger(level, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(env), "prod") {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = parseLevel(level, os.Stderr)

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// NewWriterLogger builds a console logger writing to w. Used by the CLI when
// the destination is not a file path.
func NewWriterLogger(w io.Writer, level string) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		parseLevel(level, io.Discard),
	)
	return zap.New(core)
}

func parseLevel(level string, warn io.Writer) zap.AtomicLevel {
	atomic := zap.NewAtomicLevelAt(zap.InfoLevel)
	if strings.TrimSpace(level) == "" {
		return atomic
	}
	if err := atomic.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		_, _ = io.WriteString(warn, "WARNING: invalid log level \""+level+
			"\"; valid levels are: "+strings.Join(ValidLogLevels, ", ")+". Defaulting to \"info\".\n")
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return atomic
}
