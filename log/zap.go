package log

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*zapLogger)(nil)

type zapLogger struct {
	l *zap.Logger
}

// Zap adapts a zap logger. Names from context become the zap logger name.
func Zap(l *zap.Logger) Logger {
	return &zapLogger{l: l}
}

func zapLevel(lvl Level) zapcore.Level {
	switch lvl {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.DPanicLevel
	}
}

func zapField(f Field) zap.Field {
	switch f.Type() {
	case IntType:
		return zap.Int(f.Key(), f.IntValue())
	case Int64Type:
		return zap.Int64(f.Key(), f.Int64Value())
	case StringType:
		return zap.String(f.Key(), f.StringValue())
	case BoolType:
		return zap.Bool(f.Key(), f.BoolValue())
	case DurationType:
		return zap.Duration(f.Key(), f.DurationValue())
	case StringsType:
		return zap.Strings(f.Key(), f.StringsValue())
	case ErrorType:
		return zap.NamedError(f.Key(), f.ErrorValue())
	default:
		return zap.String(f.Key(), f.String())
	}
}

func (z *zapLogger) Log(ctx context.Context, msg string, fields ...Field) {
	lvl := LevelFromContext(ctx)
	if lvl >= QUIET {
		return
	}
	l := z.l
	if names := NamesFromContext(ctx); len(names) > 0 {
		l = l.Named(strings.Join(names, "."))
	}
	ce := l.Check(zapLevel(lvl), msg)
	if ce == nil {
		return
	}
	zf := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		zf = append(zf, zapField(f))
	}
	ce.Write(zf...)
}
