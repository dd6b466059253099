package util

import "time"

// Clock abstracts time so expiry comparisons are testable.
// Business logic must never call time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func NewSystemClock() Clock { return systemClock{} }
