// Package pprl holds application-wide metadata for the pprl CLI.
package pprl

var (
	// Version is set during the build process.
	Version = "v0.1.0"
	// Build is set during the build process.
	Build = "n/a"
)
