// Package logging provides categorized zap loggers for caseforge. Until
// Initialize is called, Get returns no-op loggers so library use stays
// silent by default.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem for log correlation.
type Category string

const (
	CategoryParse    Category = "parse"    // structural parsing and normalization
	CategoryEmit     Category = "emit"     // output formatting
	CategoryProvider Category = "provider" // LLM provider calls
	CategoryRouter   Category = "router"   // provider selection and retry
	CategoryConfig   Category = "config"   // configuration loading
	CategoryCLI      Category = "cli"      // command-line entry point
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Initialize builds the process logger. verbose enables debug level.
// Safe to call once at startup; callers created before Initialize keep
// their no-op logger, so call it before constructing the pipeline.
func Initialize(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// SetLogger replaces the process logger. Intended for tests and for embedders
// that already own a zap instance.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	base = l
	mu.Unlock()
}

// Get returns a named logger for the category.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.Named(string(cat))
}

// Sync flushes buffered log entries. Called on process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
