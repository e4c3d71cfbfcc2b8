package whatsapp

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to the [RequestLogger] interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an existing zap logger for use with
// [WithRequestLogger]. A nil logger falls back to a no-op zap core.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{sugar: logger.Sugar()}
}

// NewDefaultZapLogger builds a production zap logger with ISO8601
// timestamps and wraps it as a [RequestLogger].
func NewDefaultZapLogger() (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(logger), nil
}

func (l *ZapLogger) Errorf(format string, v ...any) { l.sugar.Errorf(format, v...) }
func (l *ZapLogger) Warnf(format string, v ...any)  { l.sugar.Warnf(format, v...) }
func (l *ZapLogger) Debugf(format string, v ...any) { l.sugar.Debugf(format, v...) }
