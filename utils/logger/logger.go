package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string
	Env         string
	ServiceName string
}

// New builds a JSON zap logger for the given config without touching the
// global logger.
func New(cfg *Config) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Development:      strings.EqualFold(cfg.Env, "development"),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"env":     cfg.Env,
			"service": cfg.ServiceName,
		},
	}

	return config.Build()
}

// Init replaces the global zap logger. The package level Log* helpers and
// every component built without an explicit logger write through it.
func Init(cfg *Config) {
	logger, err := New(cfg)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Named returns a child of the global logger for one component.
func Named(component string) *zap.Logger {
	return zap.L().Named(component)
}

func caller() *zap.Logger {
	return zap.L().WithOptions(zap.AddCallerSkip(1))
}

func LogDebug(msg string, fields ...zap.Field) {
	caller().Debug(msg, fields...)
}

func LogDebugf(msg string, args ...interface{}) {
	caller().Debug(format(msg, args))
}

func LogInfo(msg string, fields ...zap.Field) {
	caller().Info(msg, fields...)
}

func LogInfof(msg string, args ...interface{}) {
	caller().Info(format(msg, args))
}

func LogWarn(msg string, fields ...zap.Field) {
	caller().Warn(msg, fields...)
}

func LogWarnf(msg string, args ...interface{}) {
	caller().Warn(format(msg, args))
}

func LogError(msg string, fields ...zap.Field) {
	caller().Error(msg, fields...)
}

func LogErrorf(msg string, args ...interface{}) {
	caller().Error(format(msg, args))
}

func LogFatal(msg string, fields ...zap.Field) {
	caller().Fatal(msg, fields...)
}

func LogFatalf(msg string, args ...interface{}) {
	caller().Fatal(format(msg, args))
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// ParseLevel maps a level name to a zap level, case-insensitively.
// Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "dbg":
		return zapcore.DebugLevel
	case "info", "information":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() {
	_ = zap.L().Sync()
}
