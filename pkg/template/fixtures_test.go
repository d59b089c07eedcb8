package template

import (
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/tmpl/pkg/filesystem"
	"github.com/arthur-debert/tmpl/pkg/types"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// exampleFiles mirrors a small set of layered templates.
var exampleFiles = map[string][]byte{
	"/example/tmpl-1/.babelrc":        []byte("{}\n"),
	"/example/tmpl-1/.gitignore":      []byte("node_modules\n"),
	"/example/tmpl-1/README.md":       []byte("# tmpl-1\n"),
	"/example/tmpl-1/index.ts":        []byte("export {};\n"),
	"/example/tmpl-1/images/face.svg": []byte("<svg></svg>\n"),
	"/example/tmpl-1/src/index.ts":    []byte("export const a = 1;\n"),

	"/example/tmpl-2/README.md":     []byte("# tmpl-2\n"),
	"/example/tmpl-2/blueprint.png": pngBytes,
	"/example/tmpl-2/index.js":      []byte("console.log('__GREETING__');\n"),

	"/example/sub-folder/tmpl-3/README.md": []byte("# tmpl-3\n"),
}

func writeFiles(t *testing.T, fsys types.FS, root string, files map[string][]byte) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, fsys.WriteFile(full, content, 0644))
	}
}

// newExampleFS returns an in-memory filesystem holding exampleFiles.
func newExampleFS(t *testing.T) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, "/", exampleFiles)
	require.NoError(t, fsys.MkdirAll("/example/empty", 0755))
	return fsys
}

func paths(files []types.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

// countingFS records how often the pipeline touches the filesystem.
type countingFS struct {
	types.FS
	calls atomic.Int64
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.calls.Add(1)
	return c.FS.Open(name)
}

func (c *countingFS) Stat(name string) (fs.FileInfo, error) {
	c.calls.Add(1)
	return c.FS.Stat(name)
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.calls.Add(1)
	return c.FS.ReadFile(name)
}

func (c *countingFS) Walk(root string, fn filepath.WalkFunc) error {
	c.calls.Add(1)
	return c.FS.Walk(root, fn)
}

// failingFS fails reads and opens of one path, and walks when walkErr is set.
type failingFS struct {
	types.FS
	readPath string
	readErr  error
	walkErr  error
}

func (f *failingFS) ReadFile(name string) ([]byte, error) {
	if name == f.readPath {
		return nil, f.readErr
	}
	return f.FS.ReadFile(name)
}

func (f *failingFS) Open(name string) (fs.File, error) {
	if name == f.readPath {
		return nil, f.readErr
	}
	return f.FS.Open(name)
}

func (f *failingFS) Walk(root string, fn filepath.WalkFunc) error {
	if f.walkErr != nil {
		return f.walkErr
	}
	return f.FS.Walk(root, fn)
}
