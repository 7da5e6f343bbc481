package storage

import (
	"time"

	"github.com/google/uuid"
)

// IDFunc produces record identifiers.
type IDFunc func() string

// Clock returns the current instant.
type Clock func() time.Time

// NewID returns a UUIDv7: a millisecond timestamp followed by random bits,
// so ids sort by creation time and collide only by chance.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Now returns the current UTC time at millisecond precision, the
// resolution of the stored timestamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
