package util

import "time"

// Timer measures elapsed time off Go's monotonic clock.
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

func (t *Timer) ElapsedUs() int64 {
	return t.Elapsed().Microseconds()
}

func (t *Timer) Reset() {
	t.start = time.Now()
}
