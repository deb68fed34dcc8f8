package domain

import "errors"

var (
	// ErrAlreadyClockedIn is returned by ClockIn when a session is already open.
	ErrAlreadyClockedIn = errors.New("already clocked in")

	// ErrNotClockedIn is returned by ClockOut when no session is open.
	ErrNotClockedIn = errors.New("not clocked in")

	// ErrInvalidTimestamp wraps any stored timestamp that cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
