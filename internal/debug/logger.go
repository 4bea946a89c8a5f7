package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Categories for debug logging (must match frontend DEBUG_CATEGORIES)
const (
	CategoryTheme      = "theme"
	CategoryStorage    = "storage"
	CategoryAppearance = "appearance"
	CategoryDOM        = "dom"
	CategoryUI         = "ui"
	CategoryWails      = "wails"
)

// Logger provides debug logging that emits events to the frontend
// and writes every record to a slog handler.
type Logger struct {
	ctx     context.Context
	enabled bool
	slog    *slog.Logger
	mu      sync.RWMutex
}

// Global logger instance
var globalLogger = &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}

// Init sets the Wails context used for frontend events.
func Init(ctx context.Context) {
	globalLogger.mu.Lock()
	globalLogger.ctx = ctx
	globalLogger.mu.Unlock()
}

// SetLogger replaces the slog logger backing the debug log.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	globalLogger.mu.Lock()
	globalLogger.slog = l
	globalLogger.mu.Unlock()
}

// SetEnabled enables or disables debug logging
func SetEnabled(enabled bool) {
	globalLogger.mu.Lock()
	globalLogger.enabled = enabled
	globalLogger.mu.Unlock()
}

// IsEnabled returns whether debug logging is enabled
func IsEnabled() bool {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.enabled
}

// Log writes a debug record and, when enabled, emits it to the frontend.
// category: one of the Category* constants
// message: short one-liner summary
// details: optional map with additional context (can be nil)
func Log(category, message string, details map[string]interface{}) {
	write(slog.LevelDebug, category, message, details)
}

// Warn writes a warning. Warnings are always recorded, and reach the
// frontend only when debug logging is enabled.
func Warn(category, message string, details map[string]interface{}) {
	write(slog.LevelWarn, category, message, details)
}

func write(level slog.Level, category, message string, details map[string]interface{}) {
	globalLogger.mu.RLock()
	enabled := globalLogger.enabled
	ctx := globalLogger.ctx
	logger := globalLogger.slog
	globalLogger.mu.RUnlock()

	attrs := make([]any, 0, 2+2*len(details))
	attrs = append(attrs, "category", category)
	for k, v := range details {
		attrs = append(attrs, k, v)
	}
	logger.Log(context.Background(), level, message, attrs...)

	if !enabled || ctx == nil {
		return
	}

	// Emit event to frontend
	runtime.EventsEmit(ctx, "debug:log", category, message, details)
}

// Convenience functions for each category

// LogTheme logs a theme resolution or switch
func LogTheme(message string, details map[string]interface{}) {
	Log(CategoryTheme, message, details)
}

// LogStorage logs a persistence-related debug message
func LogStorage(message string, details map[string]interface{}) {
	Log(CategoryStorage, message, details)
}

// LogAppearance logs an OS color-scheme event
func LogAppearance(message string, details map[string]interface{}) {
	Log(CategoryAppearance, message, details)
}

// LogDOM logs a root mutation
func LogDOM(message string, details map[string]interface{}) {
	Log(CategoryDOM, message, details)
}

// Setup creates a slog.Logger that writes to a dated log file in the user
// state directory. The caller is responsible for closing the file.
func Setup(level slog.Level) (*slog.Logger, *os.File, error) {
	stateDir, err := StateDir()
	if err != nil {
		return nil, nil, fmt.Errorf("state dir: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create state dir: %w", err)
	}
	path := filepath.Join(stateDir, fmt.Sprintf("berggeist-%s.log", time.Now().Format("20060102")))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}

// StateDir returns the path to the state directory (~/.config/berggeist/state)
func StateDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "berggeist", "state"), nil
}
