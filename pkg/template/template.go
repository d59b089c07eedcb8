package template

import (
	"sync"

	"github.com/arthur-debert/tmpl/pkg/filesystem"
	"github.com/arthur-debert/tmpl/pkg/types"
)

// FilterFunc decides whether a resolved file stays in the template.
type FilterFunc func(file types.File) bool

// Processor is one stage of a file's pipeline. See Response for how a
// processor hands control on. A returned error fails the file.
type Processor func(req *Request, res *Response) error

// Variables are passed unchanged from Execute to every processor.
type Variables map[string]any

// Template is an immutable set of sources, filters and processors.
type Template struct {
	fs         types.FS
	sources    []types.Source
	filters    []FilterFunc
	processors []Processor

	cache *fileCache
}

// fileCache holds the last resolved file list of one Template instance.
type fileCache struct {
	mu    sync.Mutex
	files []types.File
	valid bool
}

// New creates a template seeded with sources. Structural duplicates are
// dropped.
func New(sources ...types.Source) *Template {
	t := &Template{
		fs:    filesystem.NewOS(),
		cache: &fileCache{},
	}
	return t.Add(sources...)
}

// clone copies the configuration. The new instance always starts with an
// empty cache.
func (t *Template) clone() *Template {
	return &Template{
		fs:         t.fs,
		sources:    append([]types.Source(nil), t.sources...),
		filters:    append([]FilterFunc(nil), t.filters...),
		processors: append([]Processor(nil), t.processors...),
		cache:      &fileCache{},
	}
}

// Sources returns the template sources in registration order.
func (t *Template) Sources() []types.Source {
	return append([]types.Source{}, t.sources...)
}

// Add returns a new template with sources appended. Sources equal to one
// already registered are skipped.
func (t *Template) Add(sources ...types.Source) *Template {
	next := t.clone()
	for _, src := range sources {
		if next.hasSource(src) {
			continue
		}
		next.sources = append(next.sources, src)
	}
	return next
}

// AddDir is Add for directories using the default pattern.
func (t *Template) AddDir(dirs ...string) *Template {
	sources := make([]types.Source, 0, len(dirs))
	for _, dir := range dirs {
		sources = append(sources, types.NewSource(dir))
	}
	return t.Add(sources...)
}

// Merge returns a new template with the sources of every other template
// appended in order. Only sources are merged; filters and processors of
// the others are ignored.
func (t *Template) Merge(others ...*Template) *Template {
	var sources []types.Source
	for _, other := range others {
		if other != nil {
			sources = append(sources, other.sources...)
		}
	}
	return t.Add(sources...)
}

// Filter returns a new template with fn appended to the filters.
func (t *Template) Filter(fn FilterFunc) *Template {
	next := t.clone()
	next.filters = append(next.filters, fn)
	return next
}

// Process returns a new template with fn appended to the processors.
func (t *Template) Process(fn Processor) *Template {
	next := t.clone()
	next.processors = append(next.processors, fn)
	return next
}

// WithFS returns a new template reading and writing through fs.
func (t *Template) WithFS(fs types.FS) *Template {
	next := t.clone()
	next.fs = fs
	return next
}

func (t *Template) hasSource(src types.Source) bool {
	for _, existing := range t.sources {
		if existing.Equal(src) {
			return true
		}
	}
	return false
}
