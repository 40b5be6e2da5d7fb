package dotenv

import "errors"

var (
	// ErrReadFailed wraps a read failure of a file that was resolved as existing.
	ErrReadFailed = errors.New("env file read failed")
	// ErrPanic is reported when a file store operation panics during a load.
	ErrPanic = errors.New("env file load panicked")
)
