package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
)

var errMockNoRunFunc = errors.New("mock: no run function configured")

// mockFileSystem implements FileSystem with a set of existing paths.
type mockFileSystem struct {
	existing map[string]bool
	statFunc func(name string) (os.FileInfo, error)
}

func newMockFileSystem(paths ...string) *mockFileSystem {
	existing := make(map[string]bool, len(paths))
	for _, p := range paths {
		existing[p] = true
	}
	return &mockFileSystem{existing: existing}
}

func (m *mockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.statFunc != nil {
		return m.statFunc(name)
	}
	if m.existing[name] {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

// mockCommandRunner implements CommandRunner and records invocations.
type mockCommandRunner struct {
	runFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)
	calls   []commandCall
	mu      sync.Mutex
}

type commandCall struct {
	dir  string
	name string
	args []string
}

func (m *mockCommandRunner) RunContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, commandCall{dir: dir, name: name, args: args})
	m.mu.Unlock()

	if m.runFunc != nil {
		return m.runFunc(ctx, dir, name, args...)
	}
	return nil, errMockNoRunFunc
}

func (m *mockCommandRunner) getCalls() []commandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]commandCall{}, m.calls...)
}

// mockInputReader serves a byte slice as hook input.
type mockInputReader struct {
	reader     *bytes.Reader
	isTerminal bool
	readErr    error
}

func newMockInputReader(data []byte) *mockInputReader {
	return &mockInputReader{reader: bytes.NewReader(data)}
}

func (m *mockInputReader) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.reader.Read(p)
}

func (m *mockInputReader) IsTerminal() bool {
	return m.isTerminal
}

// mockSkipChecker implements SkipChecker with a fixed answer.
type mockSkipChecker struct {
	skipped bool
}

func (m *mockSkipChecker) IsSkipped(_ context.Context, _ string, _ CommandType) bool {
	return m.skipped
}

// newTestDeps builds Dependencies around the given mocks with in-memory
// output streams.
func newTestDeps(input []byte, fs *mockFileSystem, runner *mockCommandRunner) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &Dependencies{
		FS:     fs,
		Runner: runner,
		Input:  newMockInputReader(input),
		Skips:  &mockSkipChecker{},
		Stdout: stdout,
		Stderr: stderr,
	}
	return deps, stdout, stderr
}
