package clock

import (
	"log/slog"
	"sync"
	"time"

	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

// Clock supplies the current instant and the current calendar day.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a wall clock that buckets days in the named time zone.
// An unknown zone falls back to UTC.
func NewSystemClock(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Warn("Unknown timezone, falling back to UTC", "timezone", timezone, "error", err)
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (c *systemClock) Today() time.Time {
	return utils.TruncateDay(time.Now().In(c.loc))
}

// Fixed is a settable Clock for tests.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *Fixed) Today() time.Time {
	return utils.TruncateDay(f.Now())
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
