package processors

import (
	"context"
	"testing"

	"github.com/arthur-debert/tmpl/pkg/filesystem"
	"github.com/arthur-debert/tmpl/pkg/template"
	"github.com/arthur-debert/tmpl/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFS(t *testing.T) types.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	files := map[string][]byte{
		"/tmpl/index.js":       []byte("console.log('__GREETING__, __NAME__');\n"),
		"/tmpl/README.md":      []byte("# __NAME__ costs __PRICE__\n"),
		"/tmpl/logo.png":       {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0},
		"/tmpl/node_modules/x": []byte("x"),
	}
	require.NoError(t, fs.MkdirAll("/tmpl/node_modules", 0755))
	for path, content := range files {
		require.NoError(t, fs.WriteFile(path, content, 0644))
	}
	return fs
}

func TestReplaceTokens(t *testing.T) {
	fs := setupFS(t)
	tmpl := template.New().AddDir("/tmpl").WithFS(fs).
		Filter(Exclude("node_modules/**")).
		Process(ReplaceTokens(DefaultTokenPrefix, DefaultTokenSuffix)).
		Process(WriteTo(fs, "/out"))

	_, err := tmpl.Execute(context.Background(), template.ExecuteOptions{
		Variables: template.Variables{
			"greeting": "Hello!",
			"name":     "acme",
			"price":    "$5",
		},
	})
	require.NoError(t, err)

	content, err := fs.ReadFile("/out/index.js")
	require.NoError(t, err)
	assert.Equal(t, "console.log('Hello!, acme');\n", string(content))

	content, err = fs.ReadFile("/out/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# acme costs $5\n", string(content))

	content, err = fs.ReadFile("/out/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, content)

	exists, err := filesystem.Exists(fs, "/out/node_modules/x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReplaceTokensCustomDelimiters(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/tmpl", 0755))
	require.NoError(t, fs.WriteFile("/tmpl/a.txt", []byte("{{COUNT}} items, __COUNT__ left"), 0644))

	artifacts, err := template.New().AddDir("/tmpl").WithFS(fs).
		Process(ReplaceTokens("{{", "}}")).
		Execute(context.Background(), template.ExecuteOptions{
			Variables: template.Variables{"count": 3},
		})
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "3 items, __COUNT__ left", string(artifacts[0].Content))
}

func TestReplaceTokensWithoutVariables(t *testing.T) {
	fs := setupFS(t)
	artifacts, err := template.New(types.Source{Dir: "/tmpl", Pattern: "README.md"}).WithFS(fs).
		Process(ReplaceTokens(DefaultTokenPrefix, DefaultTokenSuffix)).
		Execute(context.Background(), template.ExecuteOptions{})
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "# __NAME__ costs __PRICE__\n", string(artifacts[0].Content))
}

func TestExclude(t *testing.T) {
	filter := Exclude("*.png", "node_modules/**", "docs/*.md")

	tests := []struct {
		path string
		keep bool
	}{
		{"/index.js", true},
		{"/logo.png", false},
		{"/images/logo.png", true},
		{"/node_modules/a/b.js", false},
		{"/docs/intro.md", false},
		{"/README.md", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.keep, filter(types.File{Path: tt.path}))
		})
	}
}
