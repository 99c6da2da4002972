package domain

import "time"

// Closure represents an admin-declared interval during which no new
// reservation may be admitted (banquet, maintenance, private event)
type Closure struct {
	ID        int64
	StartAt   time.Time
	EndAt     time.Time
	Reason    string
	CreatedAt time.Time
}

// IsValid returns true if the closure interval is well-formed
func (c *Closure) IsValid() bool {
	return c.EndAt.After(c.StartAt)
}

// Overlaps reports whether the closure intersects the candidate interval.
// Интервалы полуоткрытые [start, end): касание границ пересечением не считается.
func (c *Closure) Overlaps(start, end time.Time) bool {
	return c.StartAt.Before(end) && c.EndAt.After(start)
}

// AnyOverlaps returns true if any closure in the list intersects the candidate interval
func AnyOverlaps(closures []*Closure, start, end time.Time) bool {
	for _, c := range closures {
		if c.Overlaps(start, end) {
			return true
		}
	}
	return false
}
