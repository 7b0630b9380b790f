// Package logging builds the zap logger used for command tracing.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/contacts/internal/config"
)

// New returns a logger for cfg and a cleanup func that flushes and closes it.
// Stdout belongs to the user dialogue, so with no file configured the logger
// discards everything.
func New(cfg config.Log) (*zap.Logger, func() error, error) {
	if cfg.File == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	sink, closeSink, err := zap.Open(cfg.File)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: opening %s: %w", cfg.File, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
	logger := zap.New(core).Named("contacts")

	cleanup := func() error {
		err := logger.Sync()
		closeSink()
		return err
	}
	return logger, cleanup, nil
}
