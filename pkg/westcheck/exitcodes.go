// Package westcheck provides public constants for tools that drive the
// westcheck CLI.
package westcheck

// Exit codes returned by the westcheck CLI.
const (
	// ExitSuccess indicates every selected case passed.
	ExitSuccess = 0

	// ExitFailure indicates at least one observable drifted beyond its
	// tolerance.
	ExitFailure = 1

	// ExitConfigError indicates an invalid parameters file, manifest or
	// command line.
	ExitConfigError = 2

	// ExitInputError indicates a missing, unreadable or malformed artifact.
	ExitInputError = 3
)
