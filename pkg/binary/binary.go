// Package binary classifies file content as binary or text by sniffing
// bytes. File names and extensions are never consulted.
package binary

import (
	"bytes"
	"io"
	"io/fs"
	"unicode/utf8"

	"github.com/arthur-debert/tmpl/pkg/types"
)

// SampleSize is how many leading bytes are inspected.
const SampleSize = 512

var magicNumbers = [][]byte{
	[]byte("%PDF-"),
	{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	[]byte("GIF87a"),
	[]byte("GIF89a"),
	{0xff, 0xd8, 0xff},
	{'P', 'K', 0x03, 0x04},
	{0x1f, 0x8b},
	{0x7f, 'E', 'L', 'F'},
}

var textBOMs = [][]byte{
	{0xef, 0xbb, 0xbf},
	{0xfe, 0xff},
	{0xff, 0xfe},
}

// IsBinary reports whether data looks like binary content.
//
// Empty content is text. Known binary signatures win, a byte order mark
// means text, a NUL byte means binary, and otherwise the sample is binary
// when more than 10% of it is control characters or invalid UTF-8.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}

	for _, magic := range magicNumbers {
		if bytes.HasPrefix(sample, magic) {
			return true
		}
	}
	for _, bom := range textBOMs {
		if bytes.HasPrefix(sample, bom) {
			return false
		}
	}

	suspicious := 0
	for i := 0; i < len(sample); {
		b := sample[i]
		if b == 0 {
			return true
		}
		if b < utf8.RuneSelf {
			if isControl(b) {
				suspicious++
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(sample[i:])
		if r == utf8.RuneError && size <= 1 {
			// A multi-byte sequence cut off by the sample boundary is fine.
			if len(sample) < len(data) && len(sample)-i < utf8.UTFMax && !utf8.FullRune(sample[i:]) {
				break
			}
			suspicious++
			i++
			continue
		}
		i += size
	}

	return suspicious*10 > len(sample)
}

// isControl matches the C0 controls that do not occur in text files.
// Bell, backspace, tab, newline, vertical tab, form feed, carriage return,
// shift out (0x07 to 0x0E) and escape are allowed.
func isControl(b byte) bool {
	return (b < 7) || (b > 14 && b < 32 && b != 27)
}

// IsBinaryFile classifies the content of path, reading no more than the
// sample.
func IsBinaryFile(fsys types.FS, path string) (bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	return IsBinaryReader(f)
}

// IsBinaryReader classifies the first SampleSize bytes of r.
func IsBinaryReader(r io.Reader) (bool, error) {
	buf := make([]byte, SampleSize+utf8.UTFMax)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return IsBinary(buf[:n]), nil
}
