package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Init builds the global logger. Log lines go to stderr and, when path is
// non-empty, to a file as JSON.
func Init(level, path string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			lvl,
		),
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			lvl,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	globalLogger = logger.Sugar()
	return nil
}

// Logger returns the underlying sugared logger, building a no-op one if Init
// was never called (tests, library use).
func Logger() *zap.SugaredLogger {
	if globalLogger == nil {
		globalLogger = zap.NewNop().Sugar()
	}
	return globalLogger
}

func Debug(format string, args ...any) { Logger().Debugf(format, args...) }
func Info(format string, args ...any)  { Logger().Infof(format, args...) }
func Warn(format string, args ...any)  { Logger().Warnf(format, args...) }
func Error(format string, args ...any) { Logger().Errorf(format, args...) }

func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
