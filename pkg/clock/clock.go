package clock

import (
	"time"
)

var current Clock = DefaultClock{}

type Clock interface {
	Now() time.Time
}

type DefaultClock struct{}

func (c DefaultClock) Now() time.Time {
	return time.Now()
}

// TestClock returns a controlled time, advanced explicitly.
type TestClock struct {
	now time.Time
}

func NewTestClock() *TestClock {
	return NewTestClockAt(time.Now())
}

func NewTestClockAt(date time.Time) *TestClock {
	return &TestClock{
		now: date,
	}
}

func (c *TestClock) FastForward(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func (c *TestClock) Now() time.Time {
	return c.now
}

// Same as time.Now() but makes possible to control time from unit tests.
func Now() time.Time {
	return current.Now()
}

func FreezeAt(now time.Time) *TestClock {
	testClock := NewTestClockAt(now)
	current = testClock
	return testClock
}

func Freeze() *TestClock {
	testClock := NewTestClock()
	current = testClock
	return testClock
}

func Unfreeze() {
	current = DefaultClock{}
}
