// Package main implements the fmt-hook PostToolUse filter for Claude Code.
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/cchooks/gohooks/internal/config"
	"github.com/cchooks/gohooks/internal/hooks"
)

func main() {
	debug := os.Getenv("CLAUDE_HOOKS_DEBUG") == "1"

	deps := hooks.NewDefaultDependencies()
	deps.Skips = hooks.NewDefaultSkipChecker()

	exitCode := hooks.RunFormatHook(context.Background(), debug, loadFormatTimeout(), deps)
	os.Exit(exitCode)
}

func loadFormatTimeout() int {
	timeoutSecs := 15

	cfg, _ := config.Load()
	if cfg != nil && cfg.Hooks.Format.TimeoutSeconds > 0 {
		timeoutSecs = cfg.Hooks.Format.TimeoutSeconds
	}

	// Legacy environment variable, kept for existing hook setups.
	if envTimeout := os.Getenv("CLAUDE_HOOKS_FMT_TIMEOUT"); envTimeout != "" {
		if val, err := strconv.Atoi(envTimeout); err == nil && val > 0 {
			timeoutSecs = val
		}
	}

	return timeoutSecs
}
