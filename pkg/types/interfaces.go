package types

import (
	"io/fs"
	"path/filepath"
)

// FS is the filesystem surface the template engine reads sources from and
// writes rendered files to.
type FS interface {
	// File operations
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	Walk(root string, fn filepath.WalkFunc) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}
