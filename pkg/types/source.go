package types

import (
	"path"
	"path/filepath"
	"strings"
)

// DefaultPattern is the glob used when a Source does not name one.
const DefaultPattern = "**"

// Source points at one template directory plus the glob selecting files
// within it.
type Source struct {
	Dir     string `koanf:"dir" toml:"dir" yaml:"dir"`
	Pattern string `koanf:"pattern" toml:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// NewSource returns a Source for dir using the default pattern.
func NewSource(dir string) Source {
	return Source{Dir: dir}
}

// WithDefaults returns a copy with an empty pattern replaced by DefaultPattern.
func (s Source) WithDefaults() Source {
	if strings.TrimSpace(s.Pattern) == "" {
		s.Pattern = DefaultPattern
	}
	return s
}

// Equal reports structural equality. An omitted pattern equals "**".
func (s Source) Equal(other Source) bool {
	a, b := s.WithDefaults(), other.WithDefaults()
	return a.Dir == b.Dir && a.Pattern == b.Pattern
}

// Base resolves the source directory to an absolute path.
func (s Source) Base() (string, error) {
	return filepath.Abs(s.Dir)
}

func (s Source) String() string {
	src := s.WithDefaults()
	return path.Join(filepath.ToSlash(src.Dir), src.Pattern)
}

// File is a single template file produced by expanding a Source.
//
// Path is slash separated, relative to Base and always starts with "/".
// Two files with the same Path are the same file for override purposes,
// regardless of which source produced them.
type File struct {
	Source   Source
	Base     string
	Path     string
	IsBinary bool
}

// AbsPath is the location of the file on disk.
func (f File) AbsPath() string {
	return filepath.Join(f.Base, filepath.FromSlash(f.Path))
}

// RelPath converts an absolute path below base into a File path.
func RelPath(base, abs string) string {
	rel := strings.TrimPrefix(abs, base)
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return rel
}
