// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging priority.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// TraceIDFn extracts the trace id carried by ctx, if any.
type TraceIDFn func(ctx context.Context) string

// Logger writes JSON records tagged with the service name and, when
// available, the trace id of the request.
type Logger struct {
	zl      *zap.SugaredLogger
	traceID TraceIDFn
}

// New builds a logger writing to w at min level.
func New(w io.Writer, min Level, service string, traceID TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), min)
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).With(zap.String("service", service))
	return &Logger{zl: zl.Sugar(), traceID: traceID}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop().Sugar()}
}

// ParseLevel maps a level name such as "debug" or "warn".
func ParseLevel(s string) (Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// Debug logs at debug level with alternating key/value pairs.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) write(ctx context.Context, lvl Level, msg string, args []any) {
	if l.traceID != nil {
		if id := l.traceID(ctx); id != "" {
			args = append(args, "trace_id", id)
		}
	}
	l.zl.Logw(lvl, msg, args...)
}
