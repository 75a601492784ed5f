package core

import "time"

// TimeProvider abstracts time operations so tests can pin timestamps
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
}
