package ldappool

import "go.uber.org/zap"

// zapLogger adapts a *zap.Logger to Logger.
type zapLogger struct {
	log *zap.Logger
}

// NewZapLogger returns a Logger that writes through l.
//
//	pool := New(cfg, WithLogger(NewZapLogger(zap.L().Named("ldappool"))))
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return zapLogger{log: l}
}

func (z zapLogger) Debug(msg string, fields ...Field) {
	z.log.Debug(msg, zapFields(fields)...)
}

func (z zapLogger) Info(msg string, fields ...Field) {
	z.log.Info(msg, zapFields(fields)...)
}

func (z zapLogger) Error(msg string, err error, fields ...Field) {
	z.log.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
