// Package processors holds ready-made template processors and filters.
package processors

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/tmpl/pkg/glob"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/template"
	"github.com/arthur-debert/tmpl/pkg/types"
)

// Default token delimiters, as in __GREETING__.
const (
	DefaultTokenPrefix = "__"
	DefaultTokenSuffix = "__"
)

// ReplaceTokens substitutes prefix+NAME+suffix with the variable "name"
// for every variable handed to Execute. NAME is the upper-cased variable
// key. Values that are not strings are formatted with %v. Binary files are
// passed on untouched.
func ReplaceTokens(prefix, suffix string) template.Processor {
	return func(req *template.Request, res *template.Response) error {
		if req.IsBinary() || len(req.Variables) == 0 {
			res.Next()
			return nil
		}

		keys := make([]string, 0, len(req.Variables))
		for key := range req.Variables {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			token := prefix + strings.ToUpper(key) + suffix
			value := fmt.Sprintf("%v", req.Variables[key])
			res.ReplaceText(regexp.MustCompile(regexp.QuoteMeta(token)), escapeReplacement(value))
		}
		res.Next()
		return nil
	}
}

// escapeReplacement stops regexp from expanding $ in literal values.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// Exclude returns a filter dropping files whose path matches any of the
// glob patterns.
func Exclude(patterns ...string) template.FilterFunc {
	logger := logging.GetLogger("processors.exclude")
	return func(file types.File) bool {
		for _, pattern := range patterns {
			ok, err := glob.Match(pattern, file.Path)
			if err != nil {
				logger.Warn().Err(err).Str("pattern", pattern).Msg("ignoring invalid exclude pattern")
				continue
			}
			if ok {
				logger.Trace().Str("path", file.Path).Str("pattern", pattern).Msg("excluded file")
				return false
			}
		}
		return true
	}
}

// WriteTo writes the current content of each file below dir and completes
// the file. Use it as the last processor.
func WriteTo(fs types.FS, dir string) template.Processor {
	return func(req *template.Request, res *template.Response) error {
		path := filepath.Join(dir, filepath.FromSlash(req.Path))
		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := fs.WriteFile(path, req.Buffer(), 0644); err != nil {
			return err
		}
		res.Complete()
		return nil
	}
}
