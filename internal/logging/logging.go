// Package logging wraps zap with a small level-gated interface in the
// style the domain's decoder and device packages expect: a Logger that
// takes a numeric level, a message, and free-form key/value params.
package logging

import (
	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level constants match the numeric severities the core passes around
// (debug through fatal), lowest first.
const (
	Debug int8 = iota
	Info
	Warning
	Error
	Fatal
)

// Logger is the interface consumed by the rest of the core: a settable
// minimum level plus a single variadic Log call.
type Logger interface {
	SetLevel(level int8)
	Log(level int8, message string, params ...interface{})
}

// FileLogger writes structured, leveled logs to a rotating file via
// lumberjack, with zap doing the encoding.
type FileLogger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
}

// Config describes where and how logs are written and rotated.
type Config struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Level      int8
}

// New builds a FileLogger backed by a lumberjack-managed rotating file.
func New(cfg Config) *FileLogger {
	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	atom := zap.NewAtomicLevelAt(toZapLevel(cfg.Level))
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		atom,
	)
	return &FileLogger{zl: zap.New(core), level: atom}
}

// SetLevel adjusts the minimum logged severity without reopening the
// underlying file.
func (f *FileLogger) SetLevel(level int8) {
	f.level.SetLevel(toZapLevel(level))
}

// Log emits message at level, treating params as alternating key/value
// pairs when there are an even number of them with string keys, else
// as a single "params" field holding the whole list.
func (f *FileLogger) Log(level int8, message string, params ...interface{}) {
	fields := toFields(params)
	switch {
	case level >= Fatal:
		f.zl.Fatal(message, fields...)
	case level >= Error:
		f.zl.Error(message, fields...)
	case level >= Warning:
		f.zl.Warn(message, fields...)
	case level >= Info:
		f.zl.Info(message, fields...)
	default:
		f.zl.Debug(message, fields...)
	}
}

// Sync flushes any buffered log entries.
func (f *FileLogger) Sync() error {
	return f.zl.Sync()
}

// Debug logs at Debug level.
func (f *FileLogger) Debug(message string, params ...interface{}) { f.Log(Debug, message, params...) }

// Info logs at Info level.
func (f *FileLogger) Info(message string, params ...interface{}) { f.Log(Info, message, params...) }

// Warn logs at Warning level.
func (f *FileLogger) Warn(message string, params ...interface{}) { f.Log(Warning, message, params...) }

// Error logs at Error level.
func (f *FileLogger) Error(message string, params ...interface{}) { f.Log(Error, message, params...) }

// Fatal logs at Fatal level and terminates the process, matching
// zap.Logger.Fatal's behavior.
func (f *FileLogger) Fatal(message string, params ...interface{}) { f.Log(Fatal, message, params...) }

func toZapLevel(level int8) zapcore.Level {
	switch {
	case level >= Fatal:
		return zapcore.FatalLevel
	case level >= Error:
		return zapcore.ErrorLevel
	case level >= Warning:
		return zapcore.WarnLevel
	case level >= Info:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func toFields(params []interface{}) []zap.Field {
	if len(params) == 0 {
		return nil
	}
	if len(params)%2 != 0 {
		return []zap.Field{zap.Any("params", params)}
	}
	fields := make([]zap.Field, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		key, ok := params[i].(string)
		if !ok {
			return []zap.Field{zap.Any("params", params)}
		}
		fields = append(fields, zap.Any(key, params[i+1]))
	}
	return fields
}
