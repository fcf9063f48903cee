package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrPermissionDenied is returned when a directory cannot be read.
var ErrPermissionDenied = errors.New("permission denied")

// Handle is a persisted reference to a user-chosen directory.
type Handle struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// NewHandle resolves path (tilde and relative forms allowed) into a Handle.
// It does not touch the file system.
func NewHandle(path string) (Handle, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Handle{}, fmt.Errorf("directory path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return Handle{}, fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return Handle{}, fmt.Errorf("resolve %q: %w", path, err)
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		name = abs
	}
	return Handle{Path: abs, Name: name}, nil
}

// Valid reports whether the handle names a directory at all.
func (h Handle) Valid() bool {
	return strings.TrimSpace(h.Path) != ""
}

// RequestPermission checks that the directory still exists and can be listed.
// Every reuse of a remembered handle must pass through it first.
func (h Handle) RequestPermission() error {
	if !h.Valid() {
		return fmt.Errorf("%w: no directory", ErrPermissionDenied)
	}
	info, err := os.Stat(h.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPermissionDenied, h.Path)
	}
	dir, err := os.Open(h.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return nil
}
