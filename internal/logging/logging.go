// Package logging builds the shared zap logger used by all services.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production zap logger named after the service. LOG_LEVEL
// (debug/info/warn/error) and LOG_FORMAT=console override the defaults.
func New(service string) *zap.Logger {
	level := zapcore.InfoLevel
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		// zap only fails to build on a bad config; fall back to a no-op
		// logger rather than aborting service startup.
		return zap.NewNop()
	}
	return logger.Named(service)
}
