// Package version holds build metadata stamped in at link time via
// -ldflags "-X github.com/water-vapor/gpt-oss/internal/version.Version=...".
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String renders the full build identity for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
