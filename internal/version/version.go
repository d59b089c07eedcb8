// Package version holds the build information injected at link time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/tmpl/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/tmpl/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/tmpl/internal/version.Date={{.Date}}
)

// Short is the one-line form shown by --version.
func Short() string {
	if Commit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
