// Package version carries build metadata for the receiptscan binary.
package version

// Injected via -ldflags at build time; defaults identify a dev build.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, commit, and build date.
func Info() (version, commit, date string) {
	return Version, GitCommit, BuildDate
}
