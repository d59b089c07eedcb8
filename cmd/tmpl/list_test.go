package tmpl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestListCmd(t *testing.T) {
	manifest := setupProject(t)
	dir := filepath.Dir(manifest)

	t.Run("json", func(t *testing.T) {
		out, err := runCmd(t, "list", "--config", manifest, "-o", "json")
		require.NoError(t, err)

		var entries []listEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		assert.Equal(t, []listEntry{
			{Path: "/index.js", Base: filepath.Join(dir, "base")},
			{Path: "/README.md", Base: filepath.Join(dir, "variant")},
			{Path: "/logo.png", Base: filepath.Join(dir, "variant"), Binary: true},
		}, entries)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := runCmd(t, "ls", "-c", manifest, "-o", "yaml")
		require.NoError(t, err)

		var entries []listEntry
		require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 3)
		assert.Equal(t, "/logo.png", entries[2].Path)
		assert.True(t, entries[2].Binary)
	})

	t.Run("table", func(t *testing.T) {
		out, err := runCmd(t, "list", "--config", manifest)
		require.NoError(t, err)
		assert.Contains(t, out, "/index.js")
		assert.Contains(t, out, "/logo.png")
		assert.Contains(t, out, "3 file(s) in template")
	})

	t.Run("extra source overrides manifest sources", func(t *testing.T) {
		extra := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(extra, "index.js"), []byte("extra"), 0644))

		out, err := runCmd(t, "list", "--config", manifest, "-o", "json", "--source", extra)
		require.NoError(t, err)

		var entries []listEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 3)
		assert.Equal(t, "/index.js", entries[2].Path)
		assert.Equal(t, extra, entries[2].Base)
	})

	t.Run("empty template", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "tmpl.toml")
		require.NoError(t, os.WriteFile(empty, []byte(""), 0644))

		out, err := runCmd(t, "list", "--config", empty)
		require.NoError(t, err)
		assert.Contains(t, out, MsgNoFiles)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runCmd(t, "list", "--config", manifest, "-o", "xml")
		assert.Error(t, err)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := runCmd(t, "list", "--config", filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}
