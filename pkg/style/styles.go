// Package style defines the terminal styles used by the tmpl CLI.
//
// Styles have semantic names (Error, FilePath, Muted...) and adaptive colors
// that follow the terminal background. The definitions live in the embedded
// styles.yaml.
package style

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles.
type Registry struct {
	styles map[string]lipgloss.Style
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Parse builds a registry from YAML style definitions.
func Parse(data []byte) (*Registry, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	r := &Registry{styles: make(map[string]lipgloss.Style, len(config.Styles))}
	for name, def := range config.Styles {
		r.styles[name] = buildStyle(def, colors)
	}
	return r, nil
}

// Default returns the registry of the embedded styles. A broken embedded
// file leaves every style plain.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultStyles)
		if err != nil {
			r = &Registry{styles: map[string]lipgloss.Style{}}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Get returns the named style, or a plain style when it is unknown.
func (r *Registry) Get(name string) lipgloss.Style {
	if s, ok := r.styles[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Has reports whether the registry defines name.
func (r *Registry) Has(name string) bool {
	_, ok := r.styles[name]
	return ok
}

// GetStyle retrieves a style from the default registry.
func GetStyle(name string) lipgloss.Style {
	return Default().Get(name)
}

// Render applies the named style from the default registry to s.
func Render(name, s string) string {
	return GetStyle(name).Render(s)
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}

	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}

	return style
}
