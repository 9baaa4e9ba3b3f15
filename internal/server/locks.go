package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Lock represents a held project lock.
type Lock struct {
	Resource   string
	Holder     string
	AcquiredAt time.Time
}

// LockManager serializes hook runs per project.
type LockManager interface {
	Acquire(key, holder string) bool
	Release(key string)
}

// SimpleLockManager implements LockManager with in-memory locks.
type SimpleLockManager struct {
	mu    sync.RWMutex
	locks map[string]*Lock
}

// NewSimpleLockManager creates a new lock manager.
func NewSimpleLockManager() *SimpleLockManager {
	return &SimpleLockManager{
		locks: make(map[string]*Lock),
	}
}

// Acquire attempts to acquire a lock for a resource.
func (m *SimpleLockManager) Acquire(key, holder string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.locks[key]; exists {
		return false // Already locked
	}

	m.locks[key] = &Lock{
		Resource:   key,
		Holder:     holder,
		AcquiredAt: time.Now(),
	}
	return true
}

// Release releases a lock for a resource.
func (m *SimpleLockManager) Release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
}

// Logger provides logging functionality.
type Logger interface {
	Printf(format string, v ...any)
	Println(v ...any)
}

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger backed by the given slog logger.
// A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Printf formats and logs at info level.
func (l *SlogLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Println logs at info level.
func (l *SlogLogger) Println(v ...any) {
	l.logger.Info(fmt.Sprint(v...))
}
