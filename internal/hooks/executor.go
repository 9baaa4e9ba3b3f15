package hooks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandType identifies which hook pipeline a command belongs to.
type CommandType string

// Hook command types.
const (
	CommandTypeVet    CommandType = "vet"
	CommandTypeFormat CommandType = "format"
)

// Command is an external tool invocation.
type Command struct {
	WorkingDir string
	Name       string
	Args       []string
}

// String renders the command the way a user would type it.
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// ExecutorResult represents the result of executing a command.
type ExecutorResult struct {
	Success  bool
	ExitCode int
	Output   string
	Error    error
	TimedOut bool
}

// CommandExecutor runs tool commands with a bounded wait.
type CommandExecutor struct {
	timeout time.Duration
	deps    *Dependencies
}

// NewCommandExecutor creates a new command executor.
func NewCommandExecutor(timeoutSecs int, deps *Dependencies) *CommandExecutor {
	if deps == nil {
		deps = NewDefaultDependencies()
	}
	return &CommandExecutor{
		timeout: time.Duration(timeoutSecs) * time.Second,
		deps:    deps,
	}
}

// Execute runs cmd and waits for it up to the executor's timeout. A timeout
// kills the child and is reported the same way as any other failure.
func (ce *CommandExecutor) Execute(ctx context.Context, cmd *Command) *ExecutorResult {
	if cmd == nil {
		return &ExecutorResult{
			Success: false,
			Error:   fmt.Errorf("no command to execute"),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, ce.timeout)
	defer cancel()

	output, err := ce.deps.Runner.RunContext(ctx, cmd.WorkingDir, cmd.Name, cmd.Args...)

	if ctx.Err() == context.DeadlineExceeded {
		return &ExecutorResult{
			Success:  false,
			ExitCode: -1,
			Output:   string(output),
			Error:    fmt.Errorf("command timed out after %v", ce.timeout),
			TimedOut: true,
		}
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return &ExecutorResult{
		Success:  err == nil,
		ExitCode: exitCode,
		Output:   string(output),
		Error:    err,
		TimedOut: false,
	}
}
