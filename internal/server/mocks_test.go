package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var errMockNoRunFunc = errors.New("mock: no run function configured")

// mockRunner implements Runner for testing.
type mockRunner struct {
	runFunc func(ctx context.Context, input io.Reader) (*RunResult, error)
	calls   []runCall
	mu      sync.Mutex
}

type runCall struct {
	input string
}

func (m *mockRunner) Run(ctx context.Context, input io.Reader) (*RunResult, error) {
	data, _ := io.ReadAll(input)

	m.mu.Lock()
	m.calls = append(m.calls, runCall{input: string(data)})
	m.mu.Unlock()

	if m.runFunc != nil {
		return m.runFunc(ctx, nil)
	}
	return nil, errMockNoRunFunc
}

func (m *mockRunner) getCalls() []runCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]runCall{}, m.calls...)
}

// mockLockManager implements LockManager for testing.
type mockLockManager struct {
	acquireFunc func(key, holder string) bool
	locks       map[string]string
	mu          sync.Mutex
}

func newMockLockManager() *mockLockManager {
	return &mockLockManager{
		locks: make(map[string]string),
	}
}

func (m *mockLockManager) Acquire(key, holder string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.acquireFunc != nil {
		return m.acquireFunc(key, holder)
	}

	if _, exists := m.locks[key]; exists {
		return false
	}
	m.locks[key] = holder
	return true
}

func (m *mockLockManager) Release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
}

// mockLogger implements Logger for testing.
type mockLogger struct {
	messages []string
	mu       sync.Mutex
}

func newMockLogger() *mockLogger {
	return &mockLogger{
		messages: make([]string, 0),
	}
}

func (m *mockLogger) Printf(format string, v ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *mockLogger) Println(v ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprint(v...))
}

func (m *mockLogger) getMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.messages...)
}
