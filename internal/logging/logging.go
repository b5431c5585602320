// Package logging builds the zap loggers used by the command-line tools.
package logging

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adjusts the zap configuration before the logger is built.
type Option func(*zap.Config)

// ParseLevel converts a level name such as "debug" or "WARN" to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

// WithLevel sets the minimum level. Unknown names fall back to info.
func WithLevel(level string) Option {
	return func(cfg *zap.Config) {
		lvl, err := ParseLevel(level)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
}

// WithDevelopment switches to human-readable console output with stack
// traces on warnings.
func WithDevelopment(dev bool) Option {
	return func(cfg *zap.Config) {
		if !dev {
			return
		}
		cfg.Development = true
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.Sampling = nil
	}
}

// WithFields attaches fields to every log line.
func WithFields(fields map[string]any) Option {
	return func(cfg *zap.Config) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]any{}
		}
		for k, v := range fields {
			if k == "" {
				continue
			}
			cfg.InitialFields[k] = v
		}
	}
}

// WithOutput replaces the output sinks (default stderr).
func WithOutput(paths ...string) Option {
	return func(cfg *zap.Config) {
		if len(paths) > 0 {
			cfg.OutputPaths = paths
		}
	}
}

// New returns a JSON logger writing to stderr at info level, modified by opts.
func New(opts ...Option) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg.Build()
}

// Sync flushes l. Errors from syncing a terminal or pipe, which cannot be
// fsynced, are ignored.
func Sync(l *zap.Logger) error {
	err := l.Sync()
	if err == nil || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) {
		return nil
	}
	if strings.Contains(err.Error(), "inappropriate ioctl for device") {
		return nil
	}
	return err
}
