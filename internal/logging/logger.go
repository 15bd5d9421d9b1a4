// Package logging provides config-driven categorized file logging for usergrid.
// Logs go to a single JSON file under the config directory; each category is a
// named zap logger. When debug_mode is off every category is a no-op, which
// keeps the terminal UI free of log output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"usergrid/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and config
	CategoryAPI     Category = "api"     // GraphQL requests
	CategoryCache   Category = "cache"   // Response cache
	CategoryUI      Category = "ui"      // Table view events
	CategoryFixture Category = "fixture" // Fixture server
	CategoryRefresh Category = "refresh" // Scheduled refetch
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	cfg     config.LoggingConfig
	logPath string
)

// Initialize opens the log file and builds the root logger. It is a silent
// no-op when debug mode is off. dir is used when cfg.File is empty.
func Initialize(lc config.LoggingConfig, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = lc
	if !lc.DebugMode {
		root = zap.NewNop()
		logPath = ""
		return nil
	}

	path := lc.File
	if path == "" {
		if dir == "" {
			return fmt.Errorf("log directory required")
		}
		path = filepath.Join(dir, "logs", "usergrid.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Encoding = "json"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.Sampling = nil

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	root = l
	logPath = path

	boot := root.Named(string(CategoryBoot))
	boot.Info("logging initialized",
		zap.String("file", path),
		zap.String("level", level.String()),
		zap.Int("categories", len(lc.Categories)))
	return nil
}

// Get returns the logger for a category. Disabled categories get a no-op
// logger, so callers never need to check.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return root.Named(string(category))
}

// IsDebugMode reports whether file logging is active.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// Path returns the active log file, or "" when logging is off.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// Console builds a stderr logger for non-interactive commands.
func Console(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// Sync flushes the root logger and resets to a no-op (call at shutdown).
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = root.Sync()
	root = zap.NewNop()
	cfg = config.LoggingConfig{}
	logPath = ""
}
