package template

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/filesystem"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/synthfs"
)

const (
	dirPerm  fs.FileMode = 0755
	filePerm fs.FileMode = 0644
)

// WriteOptions controls Write.
type WriteOptions struct {
	// TargetDir receives the rendered files.
	TargetDir string
	// Replace removes an existing TargetDir instead of failing.
	Replace bool
	// SkipCache re-resolves files before running.
	SkipCache bool
	// Variables are passed to every processor.
	Variables Variables
}

// Write runs the pipeline and writes every artifact below TargetDir at its
// relative path. Unlike Execute it also runs when there are no processors,
// in which case files are copied unchanged.
//
// An existing TargetDir is an ErrTargetExists error unless Replace is set;
// with Replace it is removed and recreated once the pipeline has succeeded.
func (t *Template) Write(ctx context.Context, opts WriteOptions) ([]Artifact, error) {
	logger := logging.GetLogger("template.write")

	if strings.TrimSpace(opts.TargetDir) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target directory is required")
	}
	dir, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return nil, err
	}

	exists, err := filesystem.Exists(t.fs, dir)
	if err != nil {
		return nil, err
	}
	if exists && !opts.Replace {
		return nil, errors.Newf(errors.ErrTargetExists, "cannot write template, the target path already exists: %s", dir).
			WithDetail("path", dir)
	}

	files, err := t.Files(ctx, FilesOptions{SkipCache: opts.SkipCache})
	if err != nil {
		return nil, err
	}
	artifacts, err := t.run(ctx, files, opts.Variables)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Info().Str("target", dir).Msg("replacing existing target directory")
		if err := t.fs.RemoveAll(dir); err != nil {
			return nil, err
		}
	}

	root, ops, err := t.planWrite(dir, artifacts)
	if err != nil {
		return nil, err
	}
	if err := synthfs.NewExecutor(t.fs, root).ExecuteOperations(ctx, ops); err != nil {
		return nil, err
	}

	logger.Info().Str("target", dir).Int("files", len(artifacts)).Msg("wrote template")
	return artifacts, nil
}

// planWrite lists the directories to create, dir itself and any missing
// ancestor included, followed by one write per artifact. root is the
// shallowest directory the plan creates.
func (t *Template) planWrite(dir string, artifacts []Artifact) (root string, ops []synthfs.Operation, err error) {
	planned := map[string]bool{}
	addDir := func(d string) error {
		for !planned[d] {
			exists, err := filesystem.Exists(t.fs, d)
			if err != nil || exists {
				return err
			}
			planned[d] = true
			ops = append(ops, synthfs.CreateDir(d, dirPerm))
			if len(d) < len(root) {
				root = d
			}
			if d == filepath.Dir(d) {
				return nil
			}
			d = filepath.Dir(d)
		}
		return nil
	}

	root = dir
	if err := addDir(dir); err != nil {
		return "", nil, err
	}
	for _, artifact := range artifacts {
		path := filepath.Join(dir, filepath.FromSlash(artifact.File.Path))
		if err := addDir(filepath.Dir(path)); err != nil {
			return "", nil, err
		}
		ops = append(ops, synthfs.WriteFile(path, artifact.Content, t.fileMode(artifact)))
	}
	return root, ops, nil
}

// fileMode carries the source file's permission bits over to the target.
func (t *Template) fileMode(artifact Artifact) fs.FileMode {
	info, err := t.fs.Stat(artifact.File.AbsPath())
	if err != nil || info.Mode().Perm() == 0 {
		return filePerm
	}
	return info.Mode().Perm()
}
