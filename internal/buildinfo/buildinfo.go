// Package buildinfo holds version metadata stamped at build time via
// -ldflags; left at these defaults for an unreleased build.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("ironwood %s (%s, built %s)", Version, Commit, Date)
}
