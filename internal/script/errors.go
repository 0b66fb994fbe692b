package script

import "errors"

var (
	// ErrRunnerClosed is returned when running on a closed runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrOpLimit is returned when a script exceeds its operation budget.
	ErrOpLimit = errors.New("script operation limit exceeded")
)
