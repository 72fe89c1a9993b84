// Package logging builds the program's zap logger. The terminal belongs to
// the UI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"navedit/internal/config"
)

// New returns a logger for cfg and a function that flushes and closes it.
// Level "none" (or empty) yields a no-op logger.
func New(cfg config.LoggingConfig) (*zap.Logger, func() error, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zap.DebugLevel
	case "normal":
		level = zap.InfoLevel
	case "", "none":
		return zap.NewNop(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	if cfg.Destination == "" {
		return nil, nil, fmt.Errorf("log level %q needs a destination", cfg.Level)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Destination), 0o755); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", cfg.Destination, err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(f), zap.NewAtomicLevelAt(level))
	log := zap.New(core, zap.ErrorOutput(zapcore.Lock(f)))

	closer := func() error {
		_ = log.Sync()
		return f.Close()
	}
	return log, closer, nil
}
