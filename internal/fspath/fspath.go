// Package fspath enforces the workspace path boundary.
//
// Every file tool resolves caller-supplied paths through Resolve before
// touching the filesystem. Resolution is purely lexical: symlink targets
// are not followed, so a link created inside the root that points outside
// it passes containment on its own path. Callers that need symlink-safe
// containment must layer it themselves.
package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContainmentError reports a path that escapes the workspace root.
// It echoes the caller's original input rather than the resolved path so
// the message never leaks the host directory layout.
type ContainmentError struct {
	Input string
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("path escapes the workspace root: %q", e.Input)
}

// IsContainmentError reports whether err is a ContainmentError.
func IsContainmentError(err error) bool {
	var ce *ContainmentError
	return errors.As(err, &ce)
}

// Resolve absolutizes candidate against root and verifies the result
// stays inside root. The root itself is a valid resolution. Returns the
// cleaned absolute path on success.
func Resolve(root, candidate string) (string, error) {
	abs := candidate
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", &ContainmentError{Input: candidate}
	}
	if escapes(rel) {
		return "", &ContainmentError{Input: candidate}
	}
	return abs, nil
}

// escapes reports whether a root-relative path points outside the root:
// either it is absolute (different filesystem root) or its first segment
// walks up to the parent.
func escapes(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	if filepath.IsAbs(rel) {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EnsureParentDir creates any missing parent directories for path.
// The path must already have passed Resolve.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
