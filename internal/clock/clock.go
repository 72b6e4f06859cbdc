package clock

import "time"

// Clock supplies the current time to report titles and archive names.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time in the process location.
type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant. Tests use it to pin report dates.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
