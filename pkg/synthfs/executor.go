// Package synthfs materializes rendered templates as a batch of filesystem
// operations.
//
// On the real filesystem the batch runs through a synthfs pipeline. Any
// other types.FS, such as the afero memory filesystem used in tests, gets
// the same operations applied in the same order.
package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/filesystem"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/types"
	"github.com/rs/zerolog"
)

// OperationType names what an Operation does.
type OperationType string

const (
	OperationCreateDir OperationType = "create_dir"
	OperationWriteFile OperationType = "write_file"
)

// Operation is one filesystem change. Target is absolute.
type Operation struct {
	Type    OperationType
	Target  string
	Content []byte
	Mode    fs.FileMode
}

// CreateDir returns an operation creating dir with mode.
func CreateDir(dir string, mode fs.FileMode) Operation {
	return Operation{Type: OperationCreateDir, Target: dir, Mode: mode}
}

// WriteFile returns an operation writing content to path with mode.
func WriteFile(path string, content []byte, mode fs.FileMode) Operation {
	return Operation{Type: OperationWriteFile, Target: path, Content: content, Mode: mode}
}

// Executor runs operations whose targets all live below root.
type Executor struct {
	logger zerolog.Logger
	fsys   types.FS
	root   string
	osfs   synthfs.FileSystem
}

// NewExecutor returns an executor writing to fsys below root.
func NewExecutor(fsys types.FS, root string) *Executor {
	e := &Executor{
		logger: logging.GetLogger("synthfs"),
		fsys:   fsys,
		root:   filepath.Clean(root),
	}
	if filesystem.IsOS(fsys) {
		e.osfs = synthfilesystem.NewOSFileSystem("/")
	}
	return e
}

// ExecuteOperations creates every directory, shallowest first, then writes
// every file. Nothing is touched when a target falls outside root.
// Filesystem errors are returned as they are.
func (e *Executor) ExecuteOperations(ctx context.Context, ops []Operation) error {
	var dirOps, fileOps []Operation
	for _, op := range ops {
		if err := e.validateTarget(op.Target); err != nil {
			return err
		}
		switch op.Type {
		case OperationCreateDir:
			dirOps = append(dirOps, op)
		case OperationWriteFile:
			fileOps = append(fileOps, op)
		default:
			return errors.Newf(errors.ErrInternal, "unsupported operation type: %s", op.Type)
		}
	}

	// A directory is only validated once its parent level has run.
	for _, level := range byDepth(dirOps) {
		e.logger.Debug().Int("count", len(level)).Msg("Executing directory operations")
		if err := e.run(ctx, level); err != nil {
			return err
		}
	}
	if len(fileOps) > 0 {
		e.logger.Debug().Int("count", len(fileOps)).Msg("Executing file operations")
		if err := e.run(ctx, fileOps); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) run(ctx context.Context, ops []Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.osfs == nil {
		return e.apply(ops)
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range ops {
		synthOp, err := convert(op)
		if err != nil {
			return err
		}
		if err := pipeline.Add(synthOp); err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to add operation for %s", op.Target)
		}
	}

	result := synthfs.NewExecutor().Run(ctx, pipeline, e.osfs)
	if err := result.GetError(); err != nil {
		e.logger.Error().Err(err).Msg("Pipeline execution failed")
		return err
	}
	return nil
}

// apply performs ops directly on the executor's types.FS.
func (e *Executor) apply(ops []Operation) error {
	for _, op := range ops {
		var err error
		switch op.Type {
		case OperationCreateDir:
			err = e.fsys.MkdirAll(op.Target, op.Mode)
		case OperationWriteFile:
			err = e.fsys.WriteFile(op.Target, op.Content, op.Mode)
		}
		if err != nil {
			return err
		}
		e.logger.Trace().Str("type", string(op.Type)).Str("target", op.Target).Msg("applied operation")
	}
	return nil
}

func convert(op Operation) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", op.Target)
	}

	switch op.Type {
	case OperationCreateDir:
		opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Target))
		createOp := operations.NewCreateDirectoryOperation(opID, relPath)
		createOp.SetItem(&directoryItem{path: relPath, mode: op.Mode})
		return synthfs.NewOperationsPackageAdapter(createOp), nil
	default:
		opID := core.OperationID(fmt.Sprintf("write-file-%s", op.Target))
		createOp := operations.NewCreateFileOperation(opID, relPath)
		createOp.SetItem(&fileItem{path: relPath, content: op.Content, mode: op.Mode})
		return synthfs.NewOperationsPackageAdapter(createOp), nil
	}
}

func (e *Executor) validateTarget(target string) error {
	if !filepath.IsAbs(target) {
		return errors.Newf(errors.ErrInvalidInput, "operation target must be absolute: %s", target).
			WithDetail("path", target)
	}
	rel, err := filepath.Rel(e.root, filepath.Clean(target))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "operation target is outside %s: %s", e.root, target).
			WithDetail("path", target)
	}
	return nil
}

// byDepth groups directory operations by path depth, shallowest first.
func byDepth(ops []Operation) [][]Operation {
	levels := map[int][]Operation{}
	for _, op := range ops {
		depth := strings.Count(filepath.ToSlash(filepath.Clean(op.Target)), "/")
		levels[depth] = append(levels[depth], op)
	}
	depths := make([]int, 0, len(levels))
	for d := range levels {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	out := make([][]Operation, 0, len(depths))
	for _, d := range depths {
		out = append(out, levels[d])
	}
	return out
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
