// Package version reports which folio build is running. The values are
// stamped with -ldflags "-X github.com/kailas-cloud/folio/internal/version.Version=...".
package version

import "fmt"

//nolint:gochecknoglobals // overwritten by the linker
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the build as "v1.2.0 (abc1234, 2026-10-01)".
func String() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, Date)
}
