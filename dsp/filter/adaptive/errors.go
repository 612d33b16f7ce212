package adaptive

import "errors"

var (
	// ErrInvalidArgument reports malformed construction or run inputs.
	// Returned errors wrap it with detail; match with errors.Is.
	ErrInvalidArgument = errors.New("adaptive: invalid argument")

	// ErrUninitialized is returned by result accessors before the first
	// completed run.
	ErrUninitialized = errors.New("adaptive: filter has not been run")
)
