// Package paths resolves the directory strings found in manifests.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmpl/pkg/errors"
)

// HomeDir returns the user's home directory, falling back to $HOME.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	if home = os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

// Expand replaces a leading ~ with the home directory and expands $VAR and
// ${VAR} references.
func Expand(path string) (string, error) {
	path = os.ExpandEnv(path)

	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := HomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Resolve expands dir and makes it absolute. Relative results are taken
// relative to base.
func Resolve(base, dir string) (string, error) {
	expanded, err := Expand(dir)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	abs, err := filepath.Abs(filepath.Join(base, expanded))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", dir)
	}
	return abs, nil
}
