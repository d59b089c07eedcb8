package tmpl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestWriteCmd(t *testing.T) {
	manifest := setupProject(t)
	target := filepath.Join(t.TempDir(), "app")

	out, err := runCmd(t, "write", target, "--config", manifest, "--var", "greeting=Hi there")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 file(s)")

	assert.Equal(t, "console.log('Hi there');\n", readFile(t, filepath.Join(target, "index.js")))
	assert.Equal(t, "# acme\n", readFile(t, filepath.Join(target, "README.md")))
	assert.Equal(t, string(pngHeader), readFile(t, filepath.Join(target, "logo.png")))

	t.Run("existing target", func(t *testing.T) {
		_, err := runCmd(t, "write", target, "--config", manifest)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists))
	})

	t.Run("replace", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(target, "stale.txt"), []byte("x"), 0644))

		_, err := runCmd(t, "write", target, "--config", manifest, "--replace")
		require.NoError(t, err)

		assert.Equal(t, "console.log('Hello!');\n", readFile(t, filepath.Join(target, "index.js")))
		_, err = os.Stat(filepath.Join(target, "stale.txt"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestWriteCmdEnvVariables(t *testing.T) {
	manifest := setupProject(t)
	target := filepath.Join(t.TempDir(), "app")
	t.Setenv("TMPL_VAR_NAME", "from-env")

	_, err := runCmd(t, "write", target, "--config", manifest)
	require.NoError(t, err)
	assert.Equal(t, "# from-env\n", readFile(t, filepath.Join(target, "README.md")))
}

func TestWriteCmdErrors(t *testing.T) {
	manifest := setupProject(t)

	t.Run("invalid var", func(t *testing.T) {
		_, err := runCmd(t, "write", t.TempDir()+"/x", "--config", manifest, "--var", "novalue")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("no target", func(t *testing.T) {
		_, err := runCmd(t, "write", "--config", manifest)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestParseVars(t *testing.T) {
	overrides, err := parseVars([]string{"Name=acme", "url=http://x?a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"variables.name":  "acme",
		"variables.url":   "http://x?a=b",
		"variables.empty": "",
	}, overrides)

	_, err = parseVars([]string{"=x"})
	assert.Error(t, err)
}
