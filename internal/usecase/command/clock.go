package command

import (
	"time"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

// Clock returns the current time
type Clock func() time.Time

// SystemClock is the wall clock
func SystemClock() Clock {
	return time.Now
}

func (c Clock) timestamp() string {
	if c == nil {
		return domain.Timestamp(time.Now())
	}
	return domain.Timestamp(c())
}
