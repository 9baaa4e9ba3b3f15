// Package main implements the vet-hook PostToolUse filter for Claude Code.
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

	exitCode := hooks.RunVetHook(context.Background(), debug, loadVetTimeout(), deps)
	os.Exit(exitCode)
}

func loadVetTimeout() int {
	timeoutSecs := 30

	cfg, _ := config.Load()
	if cfg != nil && cfg.Hooks.Vet.TimeoutSeconds > 0 {
		timeoutSecs = cfg.Hooks.Vet.TimeoutSeconds
	}

	// Legacy environment variable, kept for existing hook setups.
	if envTimeout := os.Getenv("CLAUDE_HOOKS_VET_TIMEOUT"); envTimeout != "" {
		if val, err := strconv.Atoi(envTimeout); err == nil && val > 0 {
			timeoutSecs = val
		}
	}

	return timeoutSecs
}
