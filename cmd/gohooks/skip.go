package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cchooks/gohooks/internal/output"
	"github.com/cchooks/gohooks/internal/shared"
	"github.com/cchooks/gohooks/internal/skipregistry"
)

// runSkipCommand handles the skip command and its subcommands.
func runSkipCommand() {
	if len(os.Args) < 3 {
		printSkipUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	registry := skipregistry.NewRegistry(skipregistry.DefaultStorage())

	switch os.Args[2] {
	case "vet":
		exitOnError(addSkip(ctx, registry, skipregistry.SkipTypeVet))
	case "fmt":
		exitOnError(addSkip(ctx, registry, skipregistry.SkipTypeFormat))
	case "all":
		exitOnError(addSkip(ctx, registry, skipregistry.SkipTypeAll))
	case "list":
		exitOnError(listSkips(ctx, registry))
	case "status":
		exitOnError(showStatus(ctx, registry))
	default:
		fmt.Fprintf(os.Stderr, "Unknown skip subcommand: %s\n", os.Args[2])
		printSkipUsage()
		os.Exit(1)
	}
}

// runUnskipCommand handles the unskip command.
func runUnskipCommand() {
	ctx := context.Background()
	registry := skipregistry.NewRegistry(skipregistry.DefaultStorage())

	subcommand := "all"
	if len(os.Args) >= 3 {
		subcommand = os.Args[2]
	}

	switch subcommand {
	case "vet":
		exitOnError(removeSkip(ctx, registry, skipregistry.SkipTypeVet))
	case "fmt":
		exitOnError(removeSkip(ctx, registry, skipregistry.SkipTypeFormat))
	case "all":
		exitOnError(clearSkips(ctx, registry))
	default:
		fmt.Fprintf(os.Stderr, "Unknown unskip subcommand: %s\n", subcommand)
		printUnskipUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSkipUsage() {
	fmt.Fprintf(os.Stderr, `Usage: gohooks skip <subcommand>

Subcommands:
  vet       Skip go vet in the current directory
  fmt       Skip goimports in the current directory
  all       Skip both hooks in the current directory
  list      Show all directories with skip configurations
  status    Show skip status for the current directory

Examples:
  gohooks skip vet          # Skip vet in current directory
  gohooks skip all          # Skip both hooks in current directory
  gohooks skip list         # List all skip configurations
  gohooks skip status       # Show skip status for current directory
`)
}

func printUnskipUsage() {
	fmt.Fprintf(os.Stderr, `Usage: gohooks unskip [<type>]

Types:
  vet       Remove skip for go vet in the current directory
  fmt       Remove skip for goimports in the current directory
  all       Remove all skips for the current directory (default)
`)
}

func addSkip(ctx context.Context, registry skipregistry.Registry, skipType skipregistry.SkipType) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	if err := registry.AddSkip(ctx, skipregistry.DirectoryPath(dir), skipType); err != nil {
		return fmt.Errorf("add skip: %w", err)
	}

	switch skipType {
	case skipregistry.SkipTypeVet:
		fmt.Println(shared.SuccessStyle.Render(fmt.Sprintf("✓ go vet will be skipped in %s", dir)))
	case skipregistry.SkipTypeFormat:
		fmt.Println(shared.SuccessStyle.Render(fmt.Sprintf("✓ goimports will be skipped in %s", dir)))
	case skipregistry.SkipTypeAll:
		fmt.Println(shared.SuccessStyle.Render(fmt.Sprintf("✓ All hooks will be skipped in %s", dir)))
	}

	return nil
}

func removeSkip(ctx context.Context, registry skipregistry.Registry, skipType skipregistry.SkipType) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	if err := registry.RemoveSkip(ctx, skipregistry.DirectoryPath(dir), skipType); err != nil {
		return fmt.Errorf("remove skip: %w", err)
	}

	fmt.Println(shared.SuccessStyle.Render(fmt.Sprintf("✓ %s will no longer be skipped in %s", skipType, dir)))
	return nil
}

func clearSkips(ctx context.Context, registry skipregistry.Registry) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	if err := registry.Clear(ctx, skipregistry.DirectoryPath(dir)); err != nil {
		return fmt.Errorf("clear skips: %w", err)
	}

	fmt.Println(shared.SuccessStyle.Render(fmt.Sprintf("✓ All skips removed from %s", dir)))
	return nil
}

func listSkips(ctx context.Context, registry skipregistry.Registry) error {
	entries, err := registry.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list all: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No directories have skip configurations")
		return nil
	}

	items := make(map[string]string, len(entries))
	for _, entry := range entries {
		var typeStrs []string
		for _, t := range entry.Types {
			typeStrs = append(typeStrs, string(t))
		}
		items[entry.Path.String()] = strings.Join(typeStrs, ", ")
	}

	renderer := output.NewListRenderer()
	fmt.Print(renderer.RenderMap("Skip configurations:", items))
	return nil
}

func showStatus(ctx context.Context, registry skipregistry.Registry) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	types, err := registry.GetSkipTypes(ctx, skipregistry.DirectoryPath(dir))
	if err != nil {
		return fmt.Errorf("get skip types: %w", err)
	}

	if len(types) == 0 {
		fmt.Printf("No skips configured for %s\n", dir)
		return nil
	}

	items := make([]string, 0, len(types))
	for _, t := range types {
		items = append(items, fmt.Sprintf("%s: SKIPPED", t))
	}

	renderer := output.NewListRenderer()
	fmt.Print(renderer.Render(fmt.Sprintf("Skip status for %s:", dir), items))
	return nil
}
