// Package vfs provides the read-only file system abstraction the
// resolution engine depends on.
//
// The FS interface allows swapping the underlying file system
// implementation, enabling testing with in-memory file systems and
// embedding into editors that serve buffers from their own stores.
// All paths crossing the interface use forward slashes.
package vfs

// FS is the set of file system operations the cascade walk performs.
// Implementations must be safe for concurrent readers; the engine
// never writes.
type FS interface {
	// IsDir returns true if the path exists and is a directory.
	IsDir(path string) bool

	// Parent returns the parent directory of a path, or false when
	// the path has no parent (it is a file system root).
	Parent(path string) (string, bool)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// Join joins path elements with the separator.
	Join(elem ...string) string
}
