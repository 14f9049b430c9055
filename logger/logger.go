package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production uses JSON with ISO-8601 timestamps
// and samples entries below error level; anything else gets a colored console encoder.
func New(environment, level, format string) (*zap.Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.DisableStacktrace = true
		// sampling is applied by sampleBelowError
		config.Sampling = nil
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	if format == "json" {
		config.Encoding = "json"
		config.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	} else {
		config.Encoding = "console"
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	opts := []zap.Option{zap.AddCaller()}
	if environment == "production" {
		opts = append(opts, zap.WrapCore(sampleBelowError))
	}
	return config.Build(opts...)
}

// sampleBelowError keeps the first 100 entries per second for each message,
// then every 100th. Error entries such as dropped records are never sampled.
func sampleBelowError(core zapcore.Core) zapcore.Core {
	return &levelSampler{
		Core:    core,
		sampled: zapcore.NewSamplerWithOptions(core, time.Second, 100, 100),
	}
}

type levelSampler struct {
	zapcore.Core
	sampled zapcore.Core
}

func (c *levelSampler) With(fields []zapcore.Field) zapcore.Core {
	return &levelSampler{
		Core:    c.Core.With(fields),
		sampled: c.sampled.With(fields),
	}
}

func (c *levelSampler) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level >= zapcore.ErrorLevel {
		return c.Core.Check(ent, ce)
	}
	return c.sampled.Check(ent, ce)
}

// Sync flushes buffered entries; errors from syncing stdout are ignored.
func Sync(l *zap.Logger) {
	if l != nil {
		_ = l.Sync()
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
