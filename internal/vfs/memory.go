package vfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemFS implements FS using an in-memory file system.
// It is primarily used for testing but can also back embedders that
// serve configuration text from their own stores.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemFS creates a new in-memory file system containing only the
// root directory.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// IsDir returns true if the path is a directory.
func (m *MemFS) IsDir(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.dirs[m.cleanPath(p)]
}

// Parent returns the parent directory of a path.
// It returns false at the root.
func (m *MemFS) Parent(p string) (string, bool) {
	p = m.cleanPath(p)
	if p == "/" {
		return "", false
	}
	return path.Dir(p), true
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = m.cleanPath(p)
	_, isFile := m.files[p]
	return isFile || m.dirs[p]
}

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = m.cleanPath(p)
	f, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}

	// Return a copy to prevent modification
	content := make([]byte, len(f))
	copy(content, f)
	return content, nil
}

// Join joins path elements with a forward slash.
func (m *MemFS) Join(elem ...string) string {
	return path.Join(elem...)
}

// MkdirAll creates a directory and all parent directories.
func (m *MemFS) MkdirAll(dirPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mkdirAllLocked(m.cleanPath(dirPath))
}

func (m *MemFS) mkdirAllLocked(dirPath string) {
	parts := strings.Split(strings.Trim(dirPath, "/"), "/")
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		current += "/" + part
		m.dirs[current] = true
	}
}

// AddFile writes a file, creating parent directories as needed.
// It is a convenience method for test setup.
func (m *MemFS) AddFile(filePath, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	m.mkdirAllLocked(path.Dir(filePath))
	m.files[filePath] = []byte(content)
}

// Remove deletes a file if present.
func (m *MemFS) Remove(filePath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, m.cleanPath(filePath))
}

// Files returns all file paths in the file system, sorted.
// Useful for testing and debugging.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// cleanPath normalizes a path.
func (m *MemFS) cleanPath(p string) string {
	p = path.Clean(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
