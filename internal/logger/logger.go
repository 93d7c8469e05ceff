// Package logger constructs the application's structured logger.  All
// components log through zap's sugared interface so log lines carry
// key/value context instead of formatted strings.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger.  In the dev environment the
// development config is used instead so output stays human readable.
func New(env string) *zap.SugaredLogger {
	var cfg zap.Config
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than failing startup.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
