// Package logger provides structured logging using zap.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It is a no-op logger until Init is called,
// so library packages can log before (or without) the CLI configuring output.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init initializes the logger with the given level and optional file output.
func Init(level string, logFile string) error {
	if logFile != "" {
		return InitWithFileConfig(level, DefaultFileConfig(logFile), true)
	}
	return InitWithFileConfig(level, FileConfig{}, true)
}

// InitWithFileConfig initializes the logger with custom file configuration.
// Set consoleOutput to false to disable console logging (useful for tests).
func InitWithFileConfig(level string, fileCfg FileConfig, consoleOutput bool) error {
	lvl := ParseLevel(level)

	var cores []zapcore.Core

	if consoleOutput {
		consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		})

		// Diagnostics go to stderr so CLI output on stdout stays machine readable.
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), lvl))
	}

	if fileCfg.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}

		fileEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})

		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()

	return nil
}

// ParseLevel converts a string level to zapcore.Level. Unknown strings map to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
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

// Named returns a child of the global logger for one component.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
