// internal/logging/logging.go
// Package logging owns the process-wide zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls where and how log lines are written.
type Options struct {
	// Level is a zap level name such as "debug" or "info". Empty means info.
	Level string
	// Format is "json" or "console". Empty means console.
	Format string
	// Path optionally mirrors the log to a file, creating parent directories.
	Path string
	// Quiet suppresses stdout, for example while a terminal UI owns the screen.
	Quiet bool
}

var (
	mu      sync.Mutex
	logger  = zap.NewNop()
	logFile *os.File
)

// Init replaces the process logger according to opts. Calling Init again
// closes any previously opened log file.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	level := zapcore.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var encoder zapcore.Encoder
	if opts.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var syncers []zapcore.WriteSyncer
	if !opts.Quiet {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if opts.Path != "" {
		if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = file
		syncers = append(syncers, zapcore.AddSync(file))
	}
	if len(syncers) == 0 {
		logger = zap.NewNop()
		return nil
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)
	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

// Close flushes the logger and releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	logger = zap.NewNop()
	return closeFileLocked()
}

func closeFileLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns the current logger for structured fields.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Structured returns the logger for callers that log zap fields directly.
// Caller info points at the call site, not at this package.
func Structured() *zap.Logger {
	return Logger().WithOptions(zap.AddCallerSkip(-1))
}

// LogEvent writes an informational printf-style line.
func LogEvent(format string, args ...any) {
	Logger().Sugar().Infof(format, args...)
}

// LogDebug writes a debug printf-style line.
func LogDebug(format string, args ...any) {
	Logger().Sugar().Debugf(format, args...)
}

// LogError writes err with a short message.
func LogError(msg string, err error, fields ...zap.Field) {
	Logger().Error(msg, append(fields, zap.Error(err))...)
}
