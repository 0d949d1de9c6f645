package service

import "context"

// ShellService defines the interface for running shell command lines against
// a fixed working directory.

type ShellService interface {
	// Execute runs commandLine and, on success, hands its output lines to
	// onOutput exactly once. onOutput is not called when the command fails.
	Execute(ctx context.Context, commandLine string, onOutput func(lines []string)) error
	// Run is Execute with the output returned instead of passed to a callback.
	Run(ctx context.Context, commandLine string) ([]string, error)
	WorkDir() string
}
