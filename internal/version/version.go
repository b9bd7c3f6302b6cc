// Package version holds build metadata injected with -ldflags -X.
package version

import "fmt"

var (
	// Version is the release of the orca module
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build metadata for the -version flag.
func String() string {
	return fmt.Sprintf("orca %s (%s, built %s)", Version, GitSHA, BuildTime)
}
