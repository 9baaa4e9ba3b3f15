// Package hooks implements the post-edit vet and format hook pipelines.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// FileSystem provides the filesystem lookups the hooks need.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
}

// CommandRunner executes external commands and returns combined output.
type CommandRunner interface {
	RunContext(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// InputReader reads the hook event stream.
type InputReader interface {
	io.Reader
	IsTerminal() bool
}

// OutputWriter writes output to various destinations.
type OutputWriter interface {
	io.Writer
}

// SkipChecker reports whether a hook kind is disabled for a directory.
type SkipChecker interface {
	IsSkipped(ctx context.Context, dir string, kind CommandType) bool
}

// Dependencies holds all external dependencies.
type Dependencies struct {
	FS     FileSystem
	Runner CommandRunner
	Input  InputReader
	Skips  SkipChecker
	Stdout OutputWriter
	Stderr OutputWriter
}

// Production implementations

type realFileSystem struct{}

func (r *realFileSystem) Stat(name string) (os.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	return info, nil
}

type realCommandRunner struct{}

func (r *realCommandRunner) RunContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("run command %s: %w", name, err)
	}
	return output, nil
}

type stdinReader struct{}

func (s *stdinReader) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (s *stdinReader) IsTerminal() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// noSkips is the fallback checker when no registry is wired in.
type noSkips struct{}

func (noSkips) IsSkipped(_ context.Context, _ string, _ CommandType) bool { return false }

// NewDefaultDependencies creates production dependencies.
func NewDefaultDependencies() *Dependencies {
	return &Dependencies{
		FS:     &realFileSystem{},
		Runner: &realCommandRunner{},
		Input:  &stdinReader{},
		Skips:  noSkips{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// StringInputReader serves a fixed string as hook input. It is used by the
// server runners, which already hold the event bytes in memory.
type StringInputReader struct {
	r *strings.Reader
}

// NewStringInputReader creates an input reader over s.
func NewStringInputReader(s string) *StringInputReader {
	return &StringInputReader{r: strings.NewReader(s)}
}

// Read implements io.Reader.
func (s *StringInputReader) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// IsTerminal always reports false for string input.
func (s *StringInputReader) IsTerminal() bool { return false }

// StringOutputWriter collects output in memory.
type StringOutputWriter struct {
	buf bytes.Buffer
}

// NewStringOutputWriter creates an empty output writer.
func NewStringOutputWriter() *StringOutputWriter {
	return &StringOutputWriter{}
}

// Write implements io.Writer.
func (s *StringOutputWriter) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// String returns everything written so far.
func (s *StringOutputWriter) String() string {
	return s.buf.String()
}
