// Package glob expands template source patterns into file paths.
//
// Patterns use zglob syntax ("*" within a segment, "**/" across
// directories). Matching is always done against the slash separated path
// relative to the walked root, so dot-files are candidates like any other
// file.
package glob

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/filesystem"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/types"
	"github.com/mattn/go-zglob"
	"github.com/rs/zerolog"
)

// MatchAll is the pattern that selects every file below the root.
const MatchAll = "**"

// Normalize trims leading "./" and "/" and expands a trailing "/**" so that
// it selects files at any depth.
func Normalize(pattern string) string {
	p := filepath.ToSlash(strings.TrimSpace(pattern))
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return MatchAll
	}
	if p != MatchAll && strings.HasSuffix(p, "/"+MatchAll) {
		p += "/*"
	}
	return p
}

// Match reports whether the relative path rel is selected by pattern.
func Match(pattern, rel string) (bool, error) {
	pattern = Normalize(pattern)
	rel = strings.TrimLeft(filepath.ToSlash(rel), "/")
	if pattern == MatchAll {
		return rel != "", nil
	}
	return zglob.Match(pattern, rel)
}

// Expand walks root and returns the absolute path of every regular file
// whose root-relative path matches pattern. A root that does not exist, or
// is not a directory, yields no paths and no error.
//
// Symlinks are followed: a link to a file is a file at the link's path and
// a link to a directory is walked as if the directory were there. Broken
// links and links back into a directory being walked are skipped.
func Expand(fsys types.FS, root, pattern string) ([]string, error) {
	logger := logging.GetLogger("glob")

	isDir, err := filesystem.IsDir(fsys, root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", root)
	}
	if !isDir {
		logger.Debug().Str("root", root).Msg("source directory missing, nothing to expand")
		return nil, nil
	}

	w := &walker{fsys: fsys, root: root, pattern: pattern, logger: logger}
	if err := w.walk(root, nil); err != nil {
		if errors.GetErrorCode(err) == errors.ErrGlob {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot expand %s", filepath.Join(root, pattern))
	}

	logger.Trace().
		Str("root", root).
		Str("pattern", pattern).
		Int("matches", len(w.matches)).
		Msg("expanded pattern")

	return w.matches, nil
}

type walker struct {
	fsys    types.FS
	root    string
	pattern string
	logger  zerolog.Logger
	matches []string
}

// walk visits every file below dir. ancestors holds the directories the
// links followed so far point at.
func (w *walker) walk(dir string, ancestors []fs.FileInfo) error {
	dirs := map[string]fs.FileInfo{}
	return w.fsys.Walk(dir, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			dirs[filepath.Clean(path)] = info
			return nil
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := w.fsys.Stat(path)
			if err != nil {
				w.logger.Debug().Err(err).Str("path", path).Msg("skipping broken symlink")
				return nil
			}
			if target.IsDir() {
				chain := append(append([]fs.FileInfo{}, ancestors...), parents(dirs, path)...)
				if loops(chain, target) {
					w.logger.Debug().Str("path", path).Msg("skipping symlink cycle")
					return nil
				}
				// The trailing separator makes Walk resolve the link itself.
				return w.walk(path+string(filepath.Separator), append(chain, target))
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := types.RelPath(w.root, path)
		ok, err := Match(w.pattern, rel)
		if err != nil {
			return errors.Wrapf(err, errors.ErrGlob, "invalid pattern %q", w.pattern)
		}
		if ok {
			w.matches = append(w.matches, path)
		}
		return nil
	})
}

// parents returns the walked directories that contain path.
func parents(dirs map[string]fs.FileInfo, path string) []fs.FileInfo {
	var out []fs.FileInfo
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, ok := dirs[dir]
		if !ok {
			return out
		}
		out = append(out, info)
		if dir == filepath.Dir(dir) {
			return out
		}
	}
}

func loops(chain []fs.FileInfo, target fs.FileInfo) bool {
	for _, info := range chain {
		if os.SameFile(info, target) {
			return true
		}
	}
	return false
}
