package domain

import "time"

// Clock supplies the current time. Injected so date arithmetic and the
// sweep can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}

// DateOf truncates a time to midnight in its own location. All billing
// arithmetic happens at this granularity.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
