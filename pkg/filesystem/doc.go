// Package filesystem provides the types.FS implementations tmpl runs on.
//
// NewOS talks to the real filesystem. NewAferoFS wraps any afero.Fs, which
// is how tests run the resolver and pipeline against an in-memory tree.
package filesystem
