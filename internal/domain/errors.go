package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrCommandFailed indicates that a shell command exited with a nonzero status
	ErrCommandFailed = errors.New("command failed")
	// ErrPartialPush indicates that tags reached some remotes but not all of them
	ErrPartialPush = errors.New("partial push")
)

// CommandFailure is returned when a shell command exits with a nonzero status
// or could not be started at all (ExitCode is -1 in that case).
type CommandFailure struct {
	CommandLine string
	ExitCode    int
	Output      []string
	Err         error
}

func (e *CommandFailure) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.CommandLine, e.ExitCode)
}

// Is returns true if the target error is ErrCommandFailed
func (e *CommandFailure) Is(target error) bool {
	return target == ErrCommandFailed
}

func (e *CommandFailure) Unwrap() error {
	return e.Err
}

// PartialPushFailure is returned when tags were pushed to PushedRemote but the
// push to FailedRemote failed. Nothing is un-pushed; the remaining remote has
// to be pushed manually.
type PartialPushFailure struct {
	PushedRemote string
	FailedRemote string
	Err          error
}

func (e *PartialPushFailure) Error() string {
	return fmt.Sprintf("tags pushed to %s but push to %s failed: %v", e.PushedRemote, e.FailedRemote, e.Err)
}

// Is returns true if the target error is ErrPartialPush
func (e *PartialPushFailure) Is(target error) bool {
	return target == ErrPartialPush
}

func (e *PartialPushFailure) Unwrap() error {
	return e.Err
}
