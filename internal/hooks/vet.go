package hooks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cchooks/gohooks/internal/shared"
)

const (
	// goSourceSuffix is the only file suffix the hooks act on.
	goSourceSuffix = ".go"

	// maxDiagnosticLines caps how many vet lines are surfaced per run.
	maxDiagnosticLines = 10
)

// RunVetHook reads a PostToolUse event from deps.Input, runs go vet against
// the edited file's module, and reports diagnostics mentioning that file on
// stderr. The original event bytes are always echoed to stdout as the final
// action and the return value is always 0: no failure inside the hook may
// block the host's pipeline.
func RunVetHook(ctx context.Context, debug bool, timeoutSecs int, deps *Dependencies) int {
	if deps == nil {
		deps = NewDefaultDependencies()
	}

	raw, err := ReadRawInput(deps.Input)
	if err != nil {
		handleInputError(err, debug, deps.Stderr)
		return 0
	}
	// Passthrough is the contract the host depends on. Deferring it right
	// after the read guarantees it happens no matter which branch runs.
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

	if _, statErr := deps.FS.Stat(filePath); statErr != nil {
		// Edited file already deleted or renamed. Nothing to analyze.
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "File no longer exists: %s\n", filePath)
		}
		return 0
	}

	fileDir := filepath.Dir(filePath)
	if deps.Skips.IsSkipped(ctx, fileDir, CommandTypeVet) {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Vet skipped for directory: %s\n", fileDir)
		}
		return 0
	}

	moduleRoot, found := FindModuleRoot(deps.FS, fileDir)
	if !found {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "No module root above %s\n", fileDir)
		}
		return 0
	}

	executor := NewCommandExecutor(timeoutSecs, deps)
	result := executor.Execute(ctx, &Command{
		WorkingDir: moduleRoot,
		Name:       "go",
		Args:       []string{"vet", "./..."},
	})
	if result.Success {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "go vet clean in %s\n", moduleRoot)
		}
		return 0
	}

	reportDiagnostics(result.Output, filePath, deps.Stderr)
	return 0
}

// handleInputError handles errors from reading hook input.
func handleInputError(err error, debug bool, stderr OutputWriter) {
	if err != ErrNoInput && debug {
		_, _ = fmt.Fprintf(stderr, "Error reading input: %v\n", err)
	}
}

// resolveGoFile extracts the edited path and resolves it to an absolute Go
// source path. A missing path or foreign suffix means there is nothing to do.
func resolveGoFile(input *HookInput, debug bool, stderr OutputWriter) (string, bool) {
	filePath := input.GetFilePath()
	if filePath == "" {
		if debug {
			_, _ = fmt.Fprintln(stderr, "No file path found in input")
		}
		return "", false
	}
	if !strings.HasSuffix(filePath, goSourceSuffix) {
		if debug {
			_, _ = fmt.Fprintf(stderr, "Ignoring non-Go file: %s\n", filePath)
		}
		return "", false
	}

	abs, err := filepath.Abs(filePath)
	if err != nil {
		if debug {
			_, _ = fmt.Fprintf(stderr, "Cannot resolve path %s: %v\n", filePath, err)
		}
		return "", false
	}
	return abs, true
}

// reportDiagnostics prints vet output lines that mention the edited file.
// Matching is a plain substring check against the full path or the basename:
// it can over-match shared basenames and miss differently-rooted relative
// paths, and callers rely on that behavior.
func reportDiagnostics(output, filePath string, stderr OutputWriter) {
	base := filepath.Base(filePath)

	var matched []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, filePath) || strings.Contains(line, base) {
			matched = append(matched, line)
			if len(matched) == maxDiagnosticLines {
				break
			}
		}
	}
	if len(matched) == 0 {
		return
	}

	banner := shared.ErrorStyle.Render(fmt.Sprintf("[Hook] go vet errors in %s:", base))
	_, _ = fmt.Fprintln(stderr, banner)
	for _, line := range matched {
		_, _ = fmt.Fprintln(stderr, line)
	}
}
