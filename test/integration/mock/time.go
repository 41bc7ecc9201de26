package mock

import (
	"sync"
	"time"
)

// Time is a clock that can be moved to a fixed date. Once set it keeps
// ticking from that date.
type Time struct {
	mu      sync.Mutex
	current time.Time
	setAt   time.Time
}

func NewTime() *Time {
	now := time.Now().UTC()
	return &Time{current: now, setAt: now}
}

func (t *Time) SetCurrentTime(current time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = current
	t.setAt = time.Now()
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Add(time.Since(t.setAt))
}
