// Package logger adapts zap to the application's Logger port.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the production logger. Fields maps are flattened into zap
// key/value pairs.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZap builds a console logger; verbose enables debug output.
func NewZap(verbose bool) *ZapLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &ZapLogger{sugar: z.Sugar()}
}

// NewNop discards everything; used in tests and as a safe default.
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, flatten(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, flatten(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, flatten(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err)
	}
	l.sugar.Errorw(msg, kv...)
}

// Sync flushes buffered entries; call on shutdown.
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}

func flatten(fields map[string]interface{}) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for key, value := range fields {
		kv = append(kv, key, value)
	}
	return kv
}
