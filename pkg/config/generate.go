package config

import (
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/types"
	gotoml "github.com/pelletier/go-toml/v2"
)

const manifestHeader = `# tmpl manifest
#
# Sources are layered in order: a file found in a later source replaces the
# file with the same path from an earlier one.
# Variables replace tokens such as __NAME__ in text files. They can also be
# set with TMPL_VAR_NAME=value or tmpl write --var name=value.

`

// Generate renders a starter manifest for the given source dirs. With no
// dirs it points at ./template.
func Generate(dirs ...string) ([]byte, error) {
	if len(dirs) == 0 {
		dirs = []string{"template"}
	}

	cfg := Config{
		Exclude:   []string{".git/**", "node_modules/**"},
		Variables: map[string]any{"name": "my-project"},
		Tokens:    Tokens{Prefix: "__", Suffix: "__"},
	}
	for _, dir := range dirs {
		cfg.Sources = append(cfg.Sources, types.Source{
			Dir:     filepath.ToSlash(dir),
			Pattern: types.DefaultPattern,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(manifestHeader)
	enc := gotoml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render manifest")
	}
	return buf.Bytes(), nil
}
