// Package build exposes version information stamped in at link time.
package build

// Set via -ldflags "-X go.trai.ch/cmk/internal/build.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
