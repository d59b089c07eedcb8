package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/overrides.md":   {Data: []byte("# Overrides\n\nLater sources win.")},
		"help/option-var.txt": {Data: []byte("Sets a template variable.")},
		"help/notes.json":     {Data: []byte("{}")},
	}
}

func TestLoad(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m, err := Load(testFS(), "help", Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"option-var", "overrides"}, m.Names())

		topic, ok := m.Get("overrides")
		require.True(t, ok)
		assert.Equal(t, ".md", topic.Format)
		assert.Equal(t, "# Overrides\n\nLater sources win.", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		m, err := Load(testFS(), "help", Options{Extensions: []string{".json"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, m.Names())
	})

	t.Run("missing root", func(t *testing.T) {
		m, err := Load(testFS(), "nope", Options{})
		require.NoError(t, err)
		assert.Empty(t, m.Names())
	})
}

func TestGetFlagStyle(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	for _, name := range []string{"var", "--var", "option-var"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-var", topic.Name)
	}
	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestPlainRendererPassesThrough(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)
	topic, _ := m.Get("overrides")
	assert.Equal(t, topic.Content, m.Render(topic))
}

func TestGlamourRendererSkipsPlainText(t *testing.T) {
	r := &GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain *text*", r.Render("plain *text*", ".txt"))
	assert.Contains(t, r.Render("# Title\n\nbody", ".md"), "Title")
}

func TestInstall(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "app"}
	root.AddCommand(&cobra.Command{Use: "list", Short: "List things", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	run := func(args ...string) string {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	assert.Contains(t, run("help", "topics"), "--var")
	assert.Contains(t, run("help", "topics"), "overrides")
	assert.Equal(t, "Sets a template variable.", run("help", "--var"))
	assert.Contains(t, run("help", "list"), "List things")
}
