// Package version carries build identity for the codescope binary.
package version

// Version is the current semantic version of codescope.
const Version = "0.2.0"

// BuildDate is set during build time (use -ldflags).
var BuildDate = "development"

// GitCommit is set during build time (use -ldflags).
var GitCommit = "unknown"

// Info returns the bare version string.
func Info() string {
	return Version
}

// FullInfo returns detailed version information for --version output.
func FullInfo() string {
	return "codescope " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ")"
}
