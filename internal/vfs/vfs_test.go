package vfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMemFS_Parent(t *testing.T) {
	m := NewMemFS()

	tests := []struct {
		path   string
		parent string
		ok     bool
	}{
		{"/a/b/c", "/a/b", true},
		{"/a", "/", true},
		{"/", "", false},
	}

	for _, tt := range tests {
		parent, ok := m.Parent(tt.path)
		if parent != tt.parent || ok != tt.ok {
			t.Errorf("Parent(%q) = (%q, %v), want (%q, %v)", tt.path, parent, ok, tt.parent, tt.ok)
		}
	}
}

func TestMemFS_Files(t *testing.T) {
	m := NewMemFS()
	m.AddFile("/a/b/f.txt", "hello")

	if !m.Exists("/a/b/f.txt") {
		t.Error("Exists(/a/b/f.txt) = false, want true")
	}
	if !m.IsDir("/a/b") {
		t.Error("IsDir(/a/b) = false, want parent directories created")
	}
	if m.IsDir("/a/b/f.txt") {
		t.Error("IsDir(/a/b/f.txt) = true, want false")
	}

	data, err := m.ReadFile("/a/b/f.txt")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile() = %q, want %q", data, "hello")
	}

	_, err = m.ReadFile("/a/missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}

	m.Remove("/a/b/f.txt")
	if m.Exists("/a/b/f.txt") {
		t.Error("Exists after Remove = true, want false")
	}
}

func TestMemFS_ReadFileReturnsCopy(t *testing.T) {
	m := NewMemFS()
	m.AddFile("/f", "abc")

	data, err := m.ReadFile("/f")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	data[0] = 'X'

	again, err := m.ReadFile("/f")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(again) != "abc" {
		t.Errorf("stored content = %q, want %q", again, "abc")
	}
}

func TestOS_Parent(t *testing.T) {
	if parent, ok := (OS{}).Parent("/a/b"); !ok || parent != "/a" {
		t.Errorf("Parent(/a/b) = (%q, %v), want (/a, true)", parent, ok)
	}
	if _, ok := (OS{}).Parent("/"); ok {
		t.Error("Parent(/) ok = true, want false at the root")
	}
}

func TestOS_ReadAndExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := OS{}
	slashed := filepath.ToSlash(path)
	if !o.Exists(slashed) {
		t.Errorf("Exists(%q) = false, want true", slashed)
	}
	if !o.IsDir(filepath.ToSlash(dir)) {
		t.Error("IsDir(tempdir) = false, want true")
	}

	data, err := o.ReadFile(slashed)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("ReadFile() = %q, want %q", data, "content")
	}
}
