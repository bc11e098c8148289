package dnslog

import "go.uber.org/zap"

// zapLogger adapts a *zap.Logger to Logger, converting the generic
// fields map into zap.Any pairs at the call site.
type zapLogger struct {
	base *zap.Logger
}

// NewZap wraps base as a Logger.
func NewZap(base *zap.Logger) Logger {
	return &zapLogger{base: base}
}

func toZapFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (l *zapLogger) Debug(fields map[string]any, msg string) { l.base.Debug(msg, toZapFields(fields)...) }
func (l *zapLogger) Info(fields map[string]any, msg string)  { l.base.Info(msg, toZapFields(fields)...) }
func (l *zapLogger) Warn(fields map[string]any, msg string)  { l.base.Warn(msg, toZapFields(fields)...) }
func (l *zapLogger) Error(fields map[string]any, msg string) { l.base.Error(msg, toZapFields(fields)...) }
