package skipregistry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryAddAndCheck(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStorage())
	dir := DirectoryPath("/project/pkg")

	skipped, err := registry.IsSkipped(ctx, dir, SkipTypeVet)
	if err != nil {
		t.Fatalf("IsSkipped failed: %v", err)
	}
	if skipped {
		t.Error("Expected new directory not to be skipped")
	}

	if err := registry.AddSkip(ctx, dir, SkipTypeVet); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}

	skipped, err = registry.IsSkipped(ctx, dir, SkipTypeVet)
	if err != nil {
		t.Fatalf("IsSkipped failed: %v", err)
	}
	if !skipped {
		t.Error("Expected vet to be skipped after AddSkip")
	}

	skipped, err = registry.IsSkipped(ctx, dir, SkipTypeFormat)
	if err != nil {
		t.Fatalf("IsSkipped failed: %v", err)
	}
	if skipped {
		t.Error("Expected format not to be skipped")
	}
}

func TestRegistryAddAllCoversBothTypes(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStorage())
	dir := DirectoryPath("/project")

	if err := registry.AddSkip(ctx, dir, SkipTypeAll); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}

	for _, skipType := range []SkipType{SkipTypeVet, SkipTypeFormat} {
		skipped, err := registry.IsSkipped(ctx, dir, skipType)
		if err != nil {
			t.Fatalf("IsSkipped failed: %v", err)
		}
		if !skipped {
			t.Errorf("Expected %s to be skipped after skip all", skipType)
		}
	}
}

func TestRegistryRemoveSkip(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStorage())
	dir := DirectoryPath("/project")

	if err := registry.AddSkip(ctx, dir, SkipTypeVet); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}
	if err := registry.AddSkip(ctx, dir, SkipTypeFormat); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}

	if err := registry.RemoveSkip(ctx, dir, SkipTypeVet); err != nil {
		t.Fatalf("RemoveSkip failed: %v", err)
	}

	skipped, err := registry.IsSkipped(ctx, dir, SkipTypeVet)
	if err != nil {
		t.Fatalf("IsSkipped failed: %v", err)
	}
	if skipped {
		t.Error("Expected vet skip to be removed")
	}

	skipped, err = registry.IsSkipped(ctx, dir, SkipTypeFormat)
	if err != nil {
		t.Fatalf("IsSkipped failed: %v", err)
	}
	if !skipped {
		t.Error("Expected format skip to survive removal of vet skip")
	}
}

func TestRegistryRemoveLastTypeDropsEntry(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStorage())
	dir := DirectoryPath("/project")

	if err := registry.AddSkip(ctx, dir, SkipTypeVet); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}
	if err := registry.RemoveSkip(ctx, dir, SkipTypeVet); err != nil {
		t.Fatalf("RemoveSkip failed: %v", err)
	}

	entries, err := registry.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty registry, got %d entries", len(entries))
	}
}

func TestRegistryClearAndList(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStorage())

	if err := registry.AddSkip(ctx, DirectoryPath("/a"), SkipTypeVet); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}
	if err := registry.AddSkip(ctx, DirectoryPath("/b"), SkipTypeFormat); err != nil {
		t.Fatalf("AddSkip failed: %v", err)
	}

	entries, err := registry.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if err := registry.Clear(ctx, DirectoryPath("/a")); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err = registry.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry after clear, got %d", len(entries))
	}
	if entries[0].Path != DirectoryPath("/b") {
		t.Errorf("Expected remaining entry /b, got %s", entries[0].Path)
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "skips.json")
	storage := NewFileStorage(path)

	entries := map[string][]SkipType{
		"/project": {SkipTypeVet},
	}
	if err := storage.Save(ctx, entries); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded["/project"]) != 1 || loaded["/project"][0] != SkipTypeVet {
		t.Errorf("Unexpected loaded entries: %v", loaded)
	}
}

func TestFileStorageMissingFile(t *testing.T) {
	ctx := context.Background()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "skips.json"))

	loaded, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected empty registry for missing file, got %v", loaded)
	}
}

func TestFileStorageCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "skips.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	storage := NewFileStorage(path)
	loaded, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected corrupt file to read as empty registry, got %v", loaded)
	}
}
