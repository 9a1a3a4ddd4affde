package telemetry

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = mustBuild("info", "json")
)

// Configure replaces the process logger. Unknown levels fall back to info.
func Configure(level, format string) error {
	l, err := build(level, format)
	if err != nil {
		return err
	}
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	_ = prev.Sync()
	return nil
}

// SetLogger swaps the underlying zap logger, mainly for tests.
func SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the underlying zap logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	Logger().Debug(msg, toZap(fields)...)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	Logger().Info(msg, toZap(fields)...)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	Logger().Warn(msg, toZap(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	Logger().Error(msg, toZap(fields)...)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger().Sync()
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := fields[k].(error); ok {
			out = append(out, zap.String(k, err.Error()))
			continue
		}
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func mustBuild(level, format string) *zap.Logger {
	l, err := build(level, format)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func build(level, format string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	encoding := "json"
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		encoding = "console"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(lvl),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "msg",
			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			TimeKey:     "ts",
			EncodeTime:  zapcore.RFC3339TimeEncoder,
		},
	}
	return cfg.Build()
}
