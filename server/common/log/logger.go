package log

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global structured logger; Sugar is its printf-style view.
// Both default to a console-only logger so packages can log before Init.
var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

func init() {
	Logger = zap.New(zapcore.NewCore(newEncoder(), zapcore.AddSync(os.Stdout), zapcore.InfoLevel), zap.AddCaller())
	Sugar = Logger.Sugar()
}

type Config struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init rebuilds the global logger with a console core and, when a path is
// configured, a rolling file core.
func Init(cfg Config) {
	level := parseLevel(cfg.Level)

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(), zapcore.AddSync(os.Stdout), level),
	}

	if cfg.Path != "" {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    nz(cfg.MaxSizeMB, 100),
			MaxBackups: nz(cfg.MaxBackups, 3),
			MaxAge:     nz(cfg.MaxAgeDays, 7),
		}
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(lj), level))
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Logger.Sugar()
}

func Debugf(format string, args ...any) {
	Sugar.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	Sugar.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	Sugar.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	Sugar.Errorf(format, args...)
}

func Sync() {
	_ = Logger.Sync()
}

func newEncoder() zapcore.Encoder {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	return zapcore.NewJSONEncoder(encCfg)
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func nz(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
