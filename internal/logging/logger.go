// Package logging provides the file-based zap logger used by cmsdesk.
// The TUI owns stdout, so logs go to a file inside the project directory.
package logging

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem; it becomes the zap logger name.
type Category string

const (
	CategoryBoot     Category = "boot"
	CategoryGuard    Category = "guard"
	CategoryStore    Category = "store"
	CategoryWatcher  Category = "watcher"
	CategoryWorkflow Category = "workflow"
	CategoryUI       Category = "ui"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Initialize builds a JSON file logger under projectDir and installs it as
// the process logger. level is a zap level name; verbose forces debug.
func Initialize(projectDir, file, level string, verbose bool) (*zap.Logger, error) {
	if file == "" {
		file = "cmsdesk.log"
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{filepath.Join(projectDir, file)}
	config.ErrorOutputPaths = []string{filepath.Join(projectDir, file)}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	Set(logger)
	return logger, nil
}

// Set replaces the process logger. Passing nil installs a no-op logger.
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	root = logger
	mu.Unlock()
}

// L returns the process logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Get returns a named child logger for a category
func Get(category Category) *zap.Logger {
	return L().Named(string(category))
}

// Sync flushes buffered entries; errors from syncing terminals are ignored.
func Sync() {
	_ = L().Sync()
}
