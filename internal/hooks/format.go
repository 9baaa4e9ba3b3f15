package hooks

import (
	"context"
	"fmt"
	"path/filepath"
)

// RunFormatHook reads a PostToolUse event from deps.Input and rewrites the
// edited Go file in place with goimports. Unlike the vet hook it never
// reports anything: a missing binary, a vanished file, a timeout, and a
// non-zero exit all collapse into "no formatting happened". The original
// event bytes are always echoed to stdout and the return value is always 0.
func RunFormatHook(ctx context.Context, debug bool, timeoutSecs int, deps *Dependencies) int {
	if deps == nil {
		deps = NewDefaultDependencies()
	}

	raw, err := ReadRawInput(deps.Input)
	if err != nil {
		handleInputError(err, debug, deps.Stderr)
		return 0
	}
	defer func() {
		_, _ = deps.Stdout.Write(raw)
	}()

	input, err := ParseHookInput(raw)
	if err != nil {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Ignoring unparseable input: %v\n", err)
		}
		return 0
	}

	filePath, ok := resolveGoFile(input, debug, deps.Stderr)
	if !ok {
		return 0
	}

	if deps.Skips.IsSkipped(ctx, filepath.Dir(filePath), CommandTypeFormat) {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Format skipped for directory: %s\n", filepath.Dir(filePath))
		}
		return 0
	}

	executor := NewCommandExecutor(timeoutSecs, deps)
	result := executor.Execute(ctx, &Command{
		WorkingDir: filepath.Dir(filePath),
		Name:       "goimports",
		Args:       []string{"-w", filePath},
	})
	if debug && !result.Success {
		_, _ = fmt.Fprintf(deps.Stderr, "goimports failed: %v\n", result.Error)
	}

	return 0
}
