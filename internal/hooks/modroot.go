package hooks

import "path/filepath"

// maxModuleWalkDepth bounds the upward go.mod search so the walk always
// terminates, even on pathological mounts.
const maxModuleWalkDepth = 20

// FindModuleRoot walks upward from dir looking for a go.mod marker file.
// It checks at most maxModuleWalkDepth directories, stopping early at the
// filesystem root. The marker's content is never read, only its existence.
func FindModuleRoot(fs FileSystem, dir string) (string, bool) {
	for i := 0; i < maxModuleWalkDepth; i++ {
		if _, err := fs.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
	return "", false
}
