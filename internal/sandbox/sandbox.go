// Package sandbox confines transcript paths to the directory a test section
// runs in. Paths are resolved lexically: the file system is never consulted
// and symlinks are not followed.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Violation is the panic value raised when a path escapes its root.
// Escaping the root is a bug in the transcript, not a runtime condition,
// so it is never returned as an error.
type Violation struct {
	Root string
	Path string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("path `%s` is not a subpath of `%s`", v.Path, v.Root)
}

// Confine resolves candidate against root and returns the normalized path.
// Absolute candidates replace root as they would in a shell. It panics with
// a *Violation when the result is not root itself or located below it.
func Confine(root, candidate string) string {
	joined := candidate
	if !filepath.IsAbs(candidate) {
		joined = root + string(filepath.Separator) + candidate
	}
	path := Normalize(joined)

	if !Within(root, path) {
		panic(&Violation{Root: root, Path: path})
	}
	return path
}

// Within reports whether path equals root or lies below it, comparing whole
// path components.
func Within(root, path string) bool {
	rel, err := filepath.Rel(Normalize(root), path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Normalize removes `.` segments and resolves `..` segments lexically.
// A `..` that would climb above a relative path is kept as a leading `..`,
// one above the file system root is dropped. The empty path stays empty.
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
