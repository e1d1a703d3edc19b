// Package logging wraps zap with the estimator's event helpers.
package logging

import (
	"go.uber.org/zap"
)

// Logger wraps zap.Logger with estimator-specific events.
type Logger struct {
	*zap.Logger
}

// Config holds logging configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // "json" or "console"
	Development bool
}

// New builds a logger; an unparsable level falls back to info.
func New(cfg Config) (*Logger, error) {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	l, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: l.With(zap.String("service", "bodyshop-estimator"))}, nil
}

// Wrap adapts an existing zap logger, e.g. zap.NewNop() in tests.
func Wrap(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{Logger: l}
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return Wrap(zap.NewNop())
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// LogDataLoadFailure records a static source that could not be loaded.
func (l *Logger) LogDataLoadFailure(source string, err error) {
	l.Error("catalog source failed to load",
		zap.String("source", source),
		zap.String("type", "data_load"),
		zap.Error(err),
	)
}

// LogDataQualityEvent records a row that was skipped during normalization.
func (l *Logger) LogDataQualityEvent(table string, row int, issue string) {
	l.Warn("data quality issue",
		zap.String("table", table),
		zap.Int("row", row),
		zap.String("issue", issue),
		zap.String("type", "data_quality"),
	)
}
