package hooks

import (
	"context"

	"github.com/cchooks/gohooks/internal/skipregistry"
)

// RegistrySkipChecker adapts a skipregistry.Registry to the SkipChecker
// interface the hook pipelines consume. Registry errors read as "not
// skipped" so a damaged registry never blocks a hook run.
type RegistrySkipChecker struct {
	registry skipregistry.Registry
}

// NewRegistrySkipChecker wraps a registry as a SkipChecker.
func NewRegistrySkipChecker(registry skipregistry.Registry) *RegistrySkipChecker {
	return &RegistrySkipChecker{registry: registry}
}

// NewDefaultSkipChecker wraps the registry at the standard storage location.
func NewDefaultSkipChecker() *RegistrySkipChecker {
	return NewRegistrySkipChecker(skipregistry.NewRegistry(skipregistry.DefaultStorage()))
}

// IsSkipped implements SkipChecker.
func (c *RegistrySkipChecker) IsSkipped(ctx context.Context, dir string, kind CommandType) bool {
	skipType := skipregistry.SkipTypeVet
	if kind == CommandTypeFormat {
		skipType = skipregistry.SkipTypeFormat
	}

	skipped, err := c.registry.IsSkipped(ctx, skipregistry.DirectoryPath(dir), skipType)
	if err != nil {
		return false
	}
	return skipped
}
