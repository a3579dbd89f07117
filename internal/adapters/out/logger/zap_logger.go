package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/citamed/agenda-slots-service/internal/core/ports/out"
)

// ZapLogger backs the LoggerPort with zap: JSON output outside local
// environments, colorized console locally.
type ZapLogger struct {
	log *zap.Logger
}

func NewZapLogger(env string, level string) (*ZapLogger, error) {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(parseLevel(level)),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "module",
			MessageKey:     "event",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if env == "local" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Development = true
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{log: log}, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.log.Debug(event, zapFields(fields)...)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.log.Info(event, zapFields(fields)...)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.log.Warn(event, zapFields(fields)...)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.log.Error(event, zapFields(fields)...)
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{log: l.log.Named(module)}
}

func zapFields(fields out.LogFields) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zf = append(zf, zap.Any(key, value))
	}
	return zf
}
