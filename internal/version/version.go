// Package version carries build identification, populated by the linker.
package version

// Set via -ldflags at release build time; defaults cover local builds.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
