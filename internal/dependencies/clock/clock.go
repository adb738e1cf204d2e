package clock

import "time"

// Clock stamps lobby updates and finished-game summaries
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC so summaries written by different
// hosts sort consistently
type System struct{}

// New creates a System clock
func New() *System {
	return &System{}
}

func (System) Now() time.Time {
	return time.Now().UTC()
}
