package template

import (
	"context"
	"regexp"

	"github.com/arthur-debert/tmpl/pkg/types"
)

// Request is a processor's view of one file. It is a snapshot taken when
// the processor is invoked; changes made through the Response are visible
// to the next processor's Request.
type Request struct {
	ctx  context.Context
	raw  []byte
	text *string

	// File is the resolved file being processed.
	File types.File
	// Path is the file's template-relative path, e.g. "/src/index.ts".
	Path string
	// Variables are the values handed to Execute.
	Variables Variables
}

// Context is cancelled when the execution it belongs to fails or its
// caller gives up.
func (r *Request) Context() context.Context {
	return r.ctx
}

// Text returns the current text. ok is false while the file is treated as
// binary.
func (r *Request) Text() (text string, ok bool) {
	if r.text == nil {
		return "", false
	}
	return *r.text, true
}

// IsBinary reports whether the file currently has no text. A binary file
// becomes text once a processor sets its text.
func (r *Request) IsBinary() bool {
	return r.text == nil
}

// Buffer is the current content: the text when set, the bytes read from
// disk otherwise.
func (r *Request) Buffer() []byte {
	if r.text != nil {
		return []byte(*r.text)
	}
	return r.raw
}

// Var looks up a variable and asserts its type.
func Var[T any](req *Request, key string) (T, bool) {
	var zero T
	v, ok := req.Variables[key]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Response lets a processor change the file's content and decide what
// happens next. Exactly one of Next, Complete or Fail should eventually be
// called per invocation; once the file has finished, further calls are
// ignored.
type Response struct {
	run   *fileRun
	index int
}

// SetText replaces the current text.
func (r *Response) SetText(text string) *Response {
	r.run.mu.Lock()
	r.run.text = &text
	r.run.mu.Unlock()
	return r
}

// ReplaceText replaces every match of re in the current text. Binary files
// without text are left alone.
func (r *Response) ReplaceText(re *regexp.Regexp, replacement string) *Response {
	r.run.mu.Lock()
	if r.run.text != nil {
		replaced := re.ReplaceAllString(*r.run.text, replacement)
		r.run.text = &replaced
	}
	r.run.mu.Unlock()
	return r
}

// Text returns the current text, including changes made after the
// Request snapshot was taken.
func (r *Response) Text() (string, bool) {
	r.run.mu.Lock()
	defer r.run.mu.Unlock()
	if r.run.text == nil {
		return "", false
	}
	return *r.run.text, true
}

// Next hands the file to the following processor, or finishes it when
// this was the last one.
func (r *Response) Next() {
	r.run.next(r.index)
}

// Complete finishes the file now. Remaining processors are skipped.
func (r *Response) Complete() {
	r.run.finish(nil)
}

// Fail finishes the file with err. It is meant for processors that carry
// on in the background after returning.
func (r *Response) Fail(err error) {
	if err == nil {
		return
	}
	r.run.fail(r.index, err)
}
