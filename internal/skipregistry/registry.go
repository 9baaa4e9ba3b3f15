// Package skipregistry tracks directories where hooks are disabled.
package skipregistry

import (
	"context"
	"fmt"
	"sort"
)

// SkipType identifies which hook is skipped for a directory.
type SkipType string

// Skip types.
const (
	SkipTypeVet    SkipType = "vet"
	SkipTypeFormat SkipType = "format"
	SkipTypeAll    SkipType = "all"
)

// DirectoryPath is an absolute directory path used as a registry key.
type DirectoryPath string

// String returns the path as a plain string.
func (p DirectoryPath) String() string { return string(p) }

// RegistryEntry is one directory and the hook types skipped in it.
type RegistryEntry struct {
	Path  DirectoryPath
	Types []SkipType
}

// Registry manages per-directory skip configuration.
type Registry interface {
	AddSkip(ctx context.Context, dir DirectoryPath, skipType SkipType) error
	RemoveSkip(ctx context.Context, dir DirectoryPath, skipType SkipType) error
	IsSkipped(ctx context.Context, dir DirectoryPath, skipType SkipType) (bool, error)
	GetSkipTypes(ctx context.Context, dir DirectoryPath) ([]SkipType, error)
	ListAll(ctx context.Context) ([]RegistryEntry, error)
	Clear(ctx context.Context, dir DirectoryPath) error
}

// Storage persists the registry contents.
type Storage interface {
	Load(ctx context.Context) (map[string][]SkipType, error)
	Save(ctx context.Context, entries map[string][]SkipType) error
}

// registry implements Registry on top of a Storage.
type registry struct {
	storage Storage
}

// NewRegistry creates a registry backed by the given storage.
func NewRegistry(storage Storage) Registry {
	return &registry{storage: storage}
}

// AddSkip marks skipType as skipped in dir.
func (r *registry) AddSkip(ctx context.Context, dir DirectoryPath, skipType SkipType) error {
	entries, err := r.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	types := entries[dir.String()]
	if skipType == SkipTypeAll {
		types = []SkipType{SkipTypeVet, SkipTypeFormat}
	} else if !containsType(types, skipType) {
		types = append(types, skipType)
	}
	entries[dir.String()] = types

	if err := r.storage.Save(ctx, entries); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// RemoveSkip removes skipType from dir. Removing the last type drops the entry.
func (r *registry) RemoveSkip(ctx context.Context, dir DirectoryPath, skipType SkipType) error {
	entries, err := r.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	types := entries[dir.String()]
	var kept []SkipType
	for _, t := range types {
		if t != skipType {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(entries, dir.String())
	} else {
		entries[dir.String()] = kept
	}

	if err := r.storage.Save(ctx, entries); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// IsSkipped reports whether skipType is skipped in dir.
func (r *registry) IsSkipped(ctx context.Context, dir DirectoryPath, skipType SkipType) (bool, error) {
	entries, err := r.storage.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load registry: %w", err)
	}
	return containsType(entries[dir.String()], skipType), nil
}

// GetSkipTypes returns the skip types configured for dir, sorted.
func (r *registry) GetSkipTypes(ctx context.Context, dir DirectoryPath) ([]SkipType, error) {
	entries, err := r.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	types := append([]SkipType{}, entries[dir.String()]...)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types, nil
}

// ListAll returns every directory with skip configuration.
func (r *registry) ListAll(ctx context.Context) ([]RegistryEntry, error) {
	entries, err := r.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	result := make([]RegistryEntry, 0, len(entries))
	for path, types := range entries {
		result = append(result, RegistryEntry{
			Path:  DirectoryPath(path),
			Types: append([]SkipType{}, types...),
		})
	}
	return result, nil
}

// Clear removes all skip configuration for dir.
func (r *registry) Clear(ctx context.Context, dir DirectoryPath) error {
	entries, err := r.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	delete(entries, dir.String())

	if err := r.storage.Save(ctx, entries); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

func containsType(types []SkipType, skipType SkipType) bool {
	for _, t := range types {
		if t == skipType || t == SkipTypeAll {
			return true
		}
	}
	return false
}
