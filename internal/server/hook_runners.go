package server

import (
	"context"
	"fmt"
	"io"

	"github.com/cchooks/gohooks/internal/hooks"
)

// HookVetRunner implements VetRunner using the hooks package.
type HookVetRunner struct {
	debug       bool
	timeoutSecs int
}

// NewHookVetRunner creates a new vet runner.
func NewHookVetRunner(debug bool, timeoutSecs int) *HookVetRunner {
	return &HookVetRunner{
		debug:       debug,
		timeoutSecs: timeoutSecs,
	}
}

// Run executes the vet hook with the given event payload.
func (r *HookVetRunner) Run(ctx context.Context, input io.Reader) (*RunResult, error) {
	return runHook(ctx, input, func(ctx context.Context, deps *hooks.Dependencies) int {
		return hooks.RunVetHook(ctx, r.debug, r.timeoutSecs, deps)
	})
}

// HookFormatRunner implements FormatRunner using the hooks package.
type HookFormatRunner struct {
	debug       bool
	timeoutSecs int
}

// NewHookFormatRunner creates a new format runner.
func NewHookFormatRunner(debug bool, timeoutSecs int) *HookFormatRunner {
	return &HookFormatRunner{
		debug:       debug,
		timeoutSecs: timeoutSecs,
	}
}

// Run executes the format hook with the given event payload.
func (r *HookFormatRunner) Run(ctx context.Context, input io.Reader) (*RunResult, error) {
	return runHook(ctx, input, func(ctx context.Context, deps *hooks.Dependencies) int {
		return hooks.RunFormatHook(ctx, r.debug, r.timeoutSecs, deps)
	})
}

// runHook wires string-backed streams into a hook entry point. The hook's
// stdout (the passthrough) and stderr (diagnostics) stay separate so the
// client can replay them on the real streams.
func runHook(
	ctx context.Context,
	input io.Reader,
	hookFunc func(ctx context.Context, deps *hooks.Dependencies) int,
) (*RunResult, error) {
	inputBytes, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	stdout := hooks.NewStringOutputWriter()
	stderr := hooks.NewStringOutputWriter()

	deps := hooks.NewDefaultDependencies()
	deps.Input = hooks.NewStringInputReader(string(inputBytes))
	deps.Skips = hooks.NewDefaultSkipChecker()
	deps.Stdout = stdout
	deps.Stderr = stderr

	// Hooks absorb every failure internally; a non-zero exit here is an
	// infrastructure bug, not a tool finding.
	if exitCode := hookFunc(ctx, deps); exitCode != 0 {
		return nil, fmt.Errorf("hook error with exit code %d: %s", exitCode, stderr.String())
	}

	return &RunResult{
		Output:      stdout.String(),
		Diagnostics: stderr.String(),
	}, nil
}
