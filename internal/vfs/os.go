package vfs

import (
	"os"
	"path"
	"path/filepath"
)

// OS implements FS using the operating system's file system.
// Paths returned by its methods are slash-separated regardless of
// platform.
type OS struct{}

// Ensure OS implements FS.
var _ FS = OS{}

// IsDir returns true if the path is an existing directory.
func (OS) IsDir(p string) bool {
	info, err := os.Stat(filepath.FromSlash(p))
	return err == nil && info.IsDir()
}

// Parent returns the parent directory of a path.
// It returns false at a file system root ("/", "C:/").
func (OS) Parent(p string) (string, bool) {
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(p)))
	if dir == p || dir == "." {
		return "", false
	}
	return dir, true
}

// Exists returns true if the path exists.
func (OS) Exists(p string) bool {
	_, err := os.Stat(filepath.FromSlash(p))
	return err == nil
}

// ReadFile reads the entire file content.
func (OS) ReadFile(p string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(p))
}

// Join joins path elements with a forward slash.
func (OS) Join(elem ...string) string {
	return path.Join(elem...)
}
