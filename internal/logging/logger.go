package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production emits JSON (what CloudWatch Logs
// indexes); anything else gets the colored console encoder.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return cfg.Build()
}

// Must is New for entry points that cannot continue without a logger. It
// panics when the logger cannot be built.
func Must(env string) *zap.Logger {
	return must(New(env))
}

func must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(fmt.Errorf("logging: build logger: %w", err))
	}
	return logger
}
