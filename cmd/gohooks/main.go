// Package main implements the combined gohooks CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/cchooks/gohooks/internal/config"
	"github.com/cchooks/gohooks/internal/hooks"
	"github.com/cchooks/gohooks/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "vet":
		os.Exit(runVetWithServer())
	case "fmt":
		os.Exit(runFormatWithServer())
	case "serve":
		runServe()
	case "status":
		runStatus()
	case "skip":
		runSkipCommand()
	case "unskip":
		runUnskipCommand()
	case "version":
		fmt.Println("gohooks v0.1.0")
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `gohooks - post-edit Go hooks for Claude Code

Usage:
  gohooks <command> [arguments]

Commands:
  vet           Run go vet against the edited file's module
  fmt           Rewrite the edited file with goimports
  serve         Run server mode for improved performance
  status        Check server status
  skip          Disable hooks for the current directory
  unskip        Re-enable hooks for the current directory
  version       Print version information
  help          Show this help message

Examples:
  echo '{"tool_input":{"file_path":"main.go"}}' | gohooks vet
  echo '{"tool_input":{"file_path":"main.go"}}' | gohooks fmt
  gohooks skip vet
`)
}

func runVetWithServer() int {
	debug := os.Getenv("CLAUDE_HOOKS_DEBUG") == "1"
	timeoutSecs := loadTimeout("vet")

	raw, err := readEvent()
	if err != nil {
		return 0
	}

	return server.TryCallWithFallback("vet", raw, func(input []byte) int {
		deps := directDeps(input)
		return hooks.RunVetHook(context.Background(), debug, timeoutSecs, deps)
	})
}

func runFormatWithServer() int {
	debug := os.Getenv("CLAUDE_HOOKS_DEBUG") == "1"
	timeoutSecs := loadTimeout("fmt")

	raw, err := readEvent()
	if err != nil {
		return 0
	}

	return server.TryCallWithFallback("fmt", raw, func(input []byte) int {
		deps := directDeps(input)
		return hooks.RunFormatHook(context.Background(), debug, timeoutSecs, deps)
	})
}

// readEvent reads the hook event once so the server attempt and the direct
// fallback see the same bytes.
func readEvent() ([]byte, error) {
	deps := hooks.NewDefaultDependencies()
	raw, err := hooks.ReadRawInput(deps.Input)
	if err != nil && !errors.Is(err, hooks.ErrNoInput) {
		return nil, err
	}
	return raw, err
}

func directDeps(input []byte) *hooks.Dependencies {
	deps := hooks.NewDefaultDependencies()
	deps.Input = hooks.NewStringInputReader(string(input))
	deps.Skips = hooks.NewDefaultSkipChecker()
	return deps
}

func loadTimeout(hook string) int {
	timeoutSecs := 30
	envVar := "CLAUDE_HOOKS_VET_TIMEOUT"
	if hook == "fmt" {
		timeoutSecs = 15
		envVar = "CLAUDE_HOOKS_FMT_TIMEOUT"
	}

	cfg, _ := config.Load()
	if cfg != nil {
		if hook == "fmt" && cfg.Hooks.Format.TimeoutSeconds > 0 {
			timeoutSecs = cfg.Hooks.Format.TimeoutSeconds
		}
		if hook == "vet" && cfg.Hooks.Vet.TimeoutSeconds > 0 {
			timeoutSecs = cfg.Hooks.Vet.TimeoutSeconds
		}
	}

	if envTimeout := os.Getenv(envVar); envTimeout != "" {
		if val, err := strconv.Atoi(envTimeout); err == nil && val > 0 {
			timeoutSecs = val
		}
	}

	return timeoutSecs
}

func runServe() {
	fs := pflag.NewFlagSet("serve", pflag.ExitOnError)
	socketPath := fs.String("socket", server.DefaultSocketPath(), "Socket path")
	verbose := fs.Bool("verbose", false, "Verbose logging")
	fs.Parse(os.Args[2:])

	handler := slog.NewTextHandler(os.Stderr, nil)
	if !*verbose {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := server.NewSlogLogger(slog.New(handler))

	debug := os.Getenv("CLAUDE_HOOKS_DEBUG") == "1"
	deps := &server.ServerDependencies{
		VetRunner:    server.NewHookVetRunner(debug, loadTimeout("vet")),
		FormatRunner: server.NewHookFormatRunner(debug, loadTimeout("fmt")),
		LockManager:  server.NewSimpleLockManager(),
		Logger:       logger,
	}

	srv := server.NewServer(*socketPath, deps)

	logger.Printf("Starting server on %s", *socketPath)
	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	socketPath := os.Getenv("GOHOOKS_SOCKET")
	if socketPath == "" {
		socketPath = server.DefaultSocketPath()
	}

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		fmt.Printf("Server: NOT RUNNING\nSocket: %s (not found)\n", socketPath)
		os.Exit(1)
	}

	client := server.NewClient(socketPath)
	result, err := client.Call("stats", "")
	if err != nil {
		fmt.Printf("Server: ERROR\nSocket: %s\nError: %v\n", socketPath, err)
		os.Exit(1)
	}

	fmt.Println(result.Output)
}
