package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process wide logger. It is a no-op logger until one of the
// Init functions is called, which keeps package tests quiet.
var Logger = zap.NewNop()

func InitProductionLogger(level string) error {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

func InitDevelopmentLogger() {
	Logger, _ = zap.NewDevelopment()
}

func Sync() {
	_ = Logger.Sync()
}

type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Uint64   = zap.Uint64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Time     = zap.Time
)

func ErrorField(err error) Field {
	return zap.Error(err)
}

func Debug(msg string, fields ...Field) { Logger.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Logger.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Logger.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Logger.Error(msg, fields...) }
