package build

import "fmt"

// These values are injected at build-time with -ldflags.

var (
	// VERSION contains the tagged router version. Follows Semver+Tag.
	VERSION = "v0.1.0"

	// BuildDate is the date the build was made at.
	BuildDate string
	// Commit is the commit hash for the build source.
	Commit string
)

// Info returns the version with commit and build date when known.
func Info() string {
	if Commit == "" {
		return VERSION
	}
	return fmt.Sprintf("%s (commit %s, built %s)", VERSION, Commit, BuildDate)
}
