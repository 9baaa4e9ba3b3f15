package server

import (
	"context"
	"io"
)

// RunResult holds a hook run's outputs. Output is the stdout passthrough,
// Diagnostics is anything the hook wrote to stderr.
type RunResult struct {
	Output      string
	Diagnostics string
}

// Runner executes a hook pipeline against an event payload.
// This is the core interface all hook runners implement.
type Runner interface {
	Run(ctx context.Context, input io.Reader) (*RunResult, error)
}

// VetRunner executes the vet hook.
type VetRunner interface {
	Runner
}

// FormatRunner executes the format hook.
type FormatRunner interface {
	Runner
}
