package template

import (
	"context"

	"github.com/arthur-debert/tmpl/pkg/binary"
	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/glob"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/types"
	"golang.org/x/sync/errgroup"
)

// FilesOptions controls file resolution.
type FilesOptions struct {
	// SkipCache forces the sources to be expanded again. The fresh result
	// replaces the cached one.
	SkipCache bool
}

// Files resolves the template's sources into a single file list.
//
// Sources are expanded concurrently. Among files sharing a relative path the
// one from the source registered last wins. Filters are then applied, all of
// which must accept a file for it to be kept.
//
// Results are cached on the template. While the cache is used, repeated calls
// return the same slice; callers must not modify it.
func (t *Template) Files(ctx context.Context, opts FilesOptions) ([]types.File, error) {
	t.cache.mu.Lock()
	defer t.cache.mu.Unlock()

	if !opts.SkipCache && t.cache.valid {
		return t.cache.files, nil
	}

	logger := logging.GetLogger("template.files")
	done := logging.LogOperationStart(logger, "resolve files")
	defer done()

	files, err := t.resolve(ctx)
	if err != nil {
		return nil, err
	}

	t.cache.files = files
	t.cache.valid = true

	logger.Debug().
		Int("sources", len(t.sources)).
		Int("files", len(files)).
		Msg("resolved template files")

	return files, nil
}

func (t *Template) resolve(ctx context.Context) ([]types.File, error) {
	perSource := make([][]types.File, len(t.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range t.sources {
		g.Go(func() error {
			files, err := expandSource(gctx, t.fs, src)
			if err != nil {
				return err
			}
			perSource[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.File
	for _, files := range perSource {
		all = append(all, files...)
	}

	files := override(all)
	if len(t.filters) > 0 {
		files = t.applyFilters(files)
	}
	if files == nil {
		files = []types.File{}
	}
	return files, nil
}

// override keeps, for every relative path, the last file that carries it.
// It walks the list backwards keeping first sightings and then restores
// forward order, so surviving entries keep the position of their winning
// occurrence.
func override(files []types.File) []types.File {
	seen := make(map[string]bool, len(files))
	kept := make([]types.File, 0, len(files))
	for i := len(files) - 1; i >= 0; i-- {
		if seen[files[i].Path] {
			continue
		}
		seen[files[i].Path] = true
		kept = append(kept, files[i])
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

func (t *Template) applyFilters(files []types.File) []types.File {
	kept := make([]types.File, 0, len(files))
	for _, file := range files {
		if t.accepts(file) {
			kept = append(kept, file)
		}
	}
	return kept
}

func (t *Template) accepts(file types.File) bool {
	for _, filter := range t.filters {
		if !filter(file) {
			return false
		}
	}
	return true
}

// expandSource globs one source and classifies each match.
func expandSource(ctx context.Context, fsys types.FS, src types.Source) ([]types.File, error) {
	base, err := src.Base()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", src.Dir)
	}

	paths, err := glob.Expand(fsys, base, src.WithDefaults().Pattern)
	if err != nil {
		return nil, err
	}

	files := make([]types.File, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			isBinary, err := binary.IsBinaryFile(fsys, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot classify %s", path)
			}
			files[i] = types.File{
				Source:   src,
				Base:     base,
				Path:     types.RelPath(base, path),
				IsBinary: isBinary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
