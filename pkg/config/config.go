package config

import (
	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/paths"
	"github.com/arthur-debert/tmpl/pkg/processors"
	"github.com/arthur-debert/tmpl/pkg/template"
	"github.com/arthur-debert/tmpl/pkg/types"
)

// Config is a loaded manifest.
type Config struct {
	Sources   []types.Source `koanf:"sources" toml:"sources"`
	Exclude   []string       `koanf:"exclude" toml:"exclude"`
	Variables map[string]any `koanf:"variables" toml:"variables"`
	Tokens    Tokens         `koanf:"tokens" toml:"tokens"`
	Target    Target         `koanf:"target" toml:"target"`

	// Path is the manifest file the config was read from, if any.
	Path string `koanf:"-" toml:"-"`
}

// Tokens are the delimiters of replaceable variables, as in __NAME__.
type Tokens struct {
	Prefix string `koanf:"prefix" toml:"prefix"`
	Suffix string `koanf:"suffix" toml:"suffix"`
}

// Target configures where and how a template is written.
type Target struct {
	Dir     string `koanf:"dir" toml:"dir"`
	Replace bool   `koanf:"replace" toml:"replace"`
}

// Validate checks the fields the loader cannot default.
func (c *Config) Validate() error {
	for i, src := range c.Sources {
		if src.Dir == "" {
			return errors.Newf(errors.ErrInvalidInput, "source %d has no dir", i).
				WithDetail("manifest", c.Path)
		}
	}
	if len(c.Variables) > 0 && c.Tokens.Prefix == "" && c.Tokens.Suffix == "" {
		return errors.New(errors.ErrInvalidInput, "token prefix and suffix cannot both be empty").
			WithDetail("manifest", c.Path)
	}
	return nil
}

// Template builds the template described by the manifest: its sources,
// an exclude filter and the token replacement processor.
func (c *Config) Template() *template.Template {
	t := template.New(c.Sources...)
	if len(c.Exclude) > 0 {
		t = t.Filter(processors.Exclude(c.Exclude...))
	}
	return t.Process(processors.ReplaceTokens(c.Tokens.Prefix, c.Tokens.Suffix))
}

// ExecuteOptions returns the pipeline options carrying the manifest variables.
func (c *Config) ExecuteOptions() template.ExecuteOptions {
	return template.ExecuteOptions{Variables: c.variables()}
}

// WriteOptions returns write options for the configured target.
func (c *Config) WriteOptions() template.WriteOptions {
	return template.WriteOptions{
		TargetDir: c.Target.Dir,
		Replace:   c.Target.Replace,
		Variables: c.variables(),
	}
}

func (c *Config) variables() template.Variables {
	vars := make(template.Variables, len(c.Variables))
	for k, v := range c.Variables {
		vars[k] = v
	}
	return vars
}

// resolvePaths expands ~ and env vars in source and target dirs and makes
// relative ones absolute against base.
func (c *Config) resolvePaths(base string) error {
	for i, src := range c.Sources {
		dir, err := resolve(base, src.Dir)
		if err != nil {
			return err
		}
		c.Sources[i].Dir = dir
	}
	if c.Target.Dir != "" {
		dir, err := resolve(base, c.Target.Dir)
		if err != nil {
			return err
		}
		c.Target.Dir = dir
	}
	return nil
}

func resolve(base, dir string) (string, error) {
	abs, err := paths.Resolve(base, dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve %s", dir)
	}
	return abs, nil
}
