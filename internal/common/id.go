package common

import (
	"time"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.NewString()
}

// Now returns the current UTC time with millisecond resolution, the precision records are stored with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
