// Package logger writes structured key/value logs to a file. The TUI owns the
// terminal, so nothing is ever written to stdout or stderr.
package logger

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Logger logs key/value pairs with credential values masked.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a logger appending to path. An empty path discards everything.
// mode "production" selects JSON output at info level; anything else is the
// console encoder at debug level.
func New(mode, path string) (*Logger, error) {
	if path == "" {
		return Nop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	if m := strings.ToLower(mode); m == "prod" || m == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{s: z.Sugar()}, nil
}

func Nop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

// Sync flushes buffered entries; errors from syncing a plain file are
// ignored.
func (l *Logger) Sync() {
	_ = l.s.Sync()
}

func (l *Logger) Debug(msg string, kv ...any) { l.s.Debugw(msg, redact(kv)...) }
func (l *Logger) Info(msg string, kv ...any)  { l.s.Infow(msg, redact(kv)...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.s.Warnw(msg, redact(kv)...) }
func (l *Logger) Error(msg string, kv ...any) { l.s.Errorw(msg, redact(kv)...) }

const redacted = "[REDACTED]"

// secretMarkers are key fragments whose values never reach the log file.
var secretMarkers = []string{"password", "hash", "secret", "token"}

func redact(kv []any) []any {
	out := slices.Clone(kv)
	for i := 0; i+1 < len(out); i += 2 {
		key := strings.ToLower(fmt.Sprint(out[i]))
		if slices.ContainsFunc(secretMarkers, func(m string) bool { return strings.Contains(key, m) }) {
			out[i+1] = redacted
		}
	}
	return out
}
