package template

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/types"
	"golang.org/x/sync/errgroup"
)

// ExecuteOptions controls a pipeline run.
type ExecuteOptions struct {
	// SkipCache re-resolves files before running.
	SkipCache bool
	// Variables are passed to every processor.
	Variables Variables
}

// Artifact is the content a file ended up with once its pipeline finished.
type Artifact struct {
	File    types.File
	Content []byte
	// IsBinary is true when the content is the raw bytes read from disk
	// because no text was ever set.
	IsBinary bool
}

// Execute runs every resolved file through the processors, all files
// concurrently. It returns once every file has finished, or with the first
// error any file produced. Artifacts are in resolved-file order.
//
// Without processors Execute does nothing, not even resolve files.
func (t *Template) Execute(ctx context.Context, opts ExecuteOptions) ([]Artifact, error) {
	logger := logging.GetLogger("template.execute")
	if len(t.processors) == 0 {
		logger.Debug().Msg("no processors registered, nothing to execute")
		return nil, nil
	}

	files, err := t.Files(ctx, FilesOptions{SkipCache: opts.SkipCache})
	if err != nil {
		return nil, err
	}
	return t.run(ctx, files, opts.Variables)
}

func (t *Template) run(ctx context.Context, files []types.File, variables Variables) ([]Artifact, error) {
	logger := logging.GetLogger("template.execute")
	done := logging.LogOperationStart(logger, "execute")
	defer done()

	if variables == nil {
		variables = Variables{}
	}

	artifacts := make([]Artifact, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			raw, err := t.fs.ReadFile(file.AbsPath())
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", file.AbsPath())
			}

			// The join waits on done or cancellation, never on a processor call.
			run := newFileRun(gctx, file, raw, t.processors, variables)
			go run.start()

			select {
			case <-run.done:
			case <-gctx.Done():
				return gctx.Err()
			}
			if run.err != nil {
				logger.Debug().Err(run.err).Str("path", file.Path).Msg("file pipeline failed")
				return run.err
			}
			artifacts[i] = run.artifact
			logger.Trace().Str("path", file.Path).Msg("file pipeline finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().Int("files", len(files)).Int("processors", len(t.processors)).Msg("executed template")
	return artifacts, nil
}

// fileRun is the state of one file moving through the processor chain.
// settled flips exactly once, on completion or failure; done is closed at
// the same moment.
type fileRun struct {
	ctx        context.Context
	file       types.File
	raw        []byte
	processors []Processor
	variables  Variables

	mu       sync.Mutex
	text     *string
	index    int
	settled  bool
	err      error
	artifact Artifact
	done     chan struct{}
}

func newFileRun(ctx context.Context, file types.File, raw []byte, processors []Processor, variables Variables) *fileRun {
	r := &fileRun{
		ctx:        ctx,
		file:       file,
		raw:        raw,
		processors: processors,
		variables:  variables,
		done:       make(chan struct{}),
	}
	if !file.IsBinary {
		text := string(raw)
		r.text = &text
	}
	return r
}

func (r *fileRun) start() {
	if len(r.processors) == 0 {
		r.finish(nil)
		return
	}
	r.invoke(0)
}

// next advances past processor from. Calls from an invocation that is no
// longer current are ignored.
func (r *fileRun) next(from int) {
	r.mu.Lock()
	if r.settled || r.index != from {
		r.mu.Unlock()
		return
	}
	r.index++
	index := r.index
	r.mu.Unlock()

	if index >= len(r.processors) {
		r.finish(nil)
		return
	}
	r.invoke(index)
}

func (r *fileRun) invoke(index int) {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		return
	}
	req := &Request{
		ctx:       r.ctx,
		raw:       r.raw,
		text:      r.text,
		File:      r.file,
		Path:      r.file.Path,
		Variables: r.variables,
	}
	r.mu.Unlock()

	if err := callProcessor(r.processors[index], req, &Response{run: r, index: index}); err != nil {
		r.fail(index, err)
	}
}

func (r *fileRun) fail(index int, err error) {
	r.finish(errors.Wrapf(err, errors.ErrProcessor, "processor %d failed on %s", index, r.file.Path).
		WithDetail("path", r.file.Path).
		WithDetail("processor", index))
}

func (r *fileRun) finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settled {
		return
	}
	r.settled = true
	r.err = err
	if err == nil {
		r.artifact = Artifact{File: r.file, Content: r.raw, IsBinary: true}
		if r.text != nil {
			r.artifact.Content = []byte(*r.text)
			r.artifact.IsBinary = false
		}
	}
	close(r.done)
}

func callProcessor(p Processor, req *Request, res *Response) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("processor panicked: %v", rec)
		}
	}()
	return p(req, res)
}
