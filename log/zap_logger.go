package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger builds a console logger writing to stderr at level
// ("debug", "info", "warn" or "error"). Stdout stays free for command output.
func NewZapLogger(level string) (Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if fi, statErr := os.Stderr.Stat(); statErr != nil || fi.Mode()&os.ModeCharDevice == 0 {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return NewZapLoggerByConfig(config, zap.AddCallerSkip(1))
}

// NewZapLoggerByConfig wraps a logger built from config. Pass
// zap.AddCallerSkip(1) to report the caller of the wrapper.
func NewZapLoggerByConfig(config zap.Config, options ...zap.Option) (Logger, error) {
	logger, err := config.Build(options...)
	if err != nil {
		return nil, err
	}
	return FromZap(logger), nil
}

// FromZap wraps an existing zap logger.
func FromZap(logger *zap.Logger) Logger {
	return &ZapLogger{sugar: logger.Sugar()}
}

// NewNopLogger discards everything.
func NewNopLogger() Logger {
	return FromZap(zap.NewNop())
}

func (z *ZapLogger) Debug(msg string, tags ...any) { z.sugar.Debugw(msg, tags...) }
func (z *ZapLogger) Info(msg string, tags ...any)  { z.sugar.Infow(msg, tags...) }
func (z *ZapLogger) Warn(msg string, tags ...any)  { z.sugar.Warnw(msg, tags...) }
func (z *ZapLogger) Error(msg string, tags ...any) { z.sugar.Errorw(msg, tags...) }

func (z *ZapLogger) Debugf(template string, args ...any) { z.sugar.Debugf(template, args...) }
func (z *ZapLogger) Infof(template string, args ...any)  { z.sugar.Infof(template, args...) }
func (z *ZapLogger) Warnf(template string, args ...any)  { z.sugar.Warnf(template, args...) }
func (z *ZapLogger) Errorf(template string, args ...any) { z.sugar.Errorf(template, args...) }

func (z *ZapLogger) With(tags ...any) Logger {
	return &ZapLogger{sugar: z.sugar.With(tags...)}
}
