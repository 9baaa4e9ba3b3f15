package skipregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const storageFileMode = 0600

// FileStorage persists the registry as a JSON file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a storage backed by the file at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStorage returns storage at the standard location:
// $XDG_DATA_HOME/gohooks/skips.json, falling back to ~/.local/share/gohooks/.
func DefaultStorage() *FileStorage {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// No home directory, keep registry state local.
			return NewFileStorage("skips.json")
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return NewFileStorage(filepath.Join(dataDir, "gohooks", "skips.json"))
}

// Load reads the registry file. A missing or corrupt file is treated as an
// empty registry so a damaged data file never breaks the hooks.
func (s *FileStorage) Load(_ context.Context) (map[string][]SkipType, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 - path is derived from XDG dirs
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string][]SkipType), nil
		}
		return nil, fmt.Errorf("read registry file %s: %w", s.path, err)
	}

	var entries map[string][]SkipType
	if err := json.Unmarshal(data, &entries); err != nil {
		return make(map[string][]SkipType), nil
	}
	if entries == nil {
		entries = make(map[string][]SkipType)
	}
	return entries, nil
}

// Save writes the registry file, creating its directory if needed.
func (s *FileStorage) Save(_ context.Context, entries map[string][]SkipType) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create registry dir %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, storageFileMode); err != nil {
		return fmt.Errorf("write registry file %s: %w", s.path, err)
	}
	return nil
}

// MemoryStorage keeps registry state in memory. It is used in tests.
type MemoryStorage struct {
	entries map[string][]SkipType
	loadErr error
	saveErr error
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string][]SkipType)}
}

// Load returns a copy of the stored entries.
func (m *MemoryStorage) Load(_ context.Context) (map[string][]SkipType, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	copied := make(map[string][]SkipType, len(m.entries))
	for k, v := range m.entries {
		copied[k] = append([]SkipType{}, v...)
	}
	return copied, nil
}

// Save replaces the stored entries.
func (m *MemoryStorage) Save(_ context.Context, entries map[string][]SkipType) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = entries
	return nil
}
