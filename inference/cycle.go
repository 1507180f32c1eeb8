package inference

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/fuzzy_ive_go/rules"
	"github.com/rickb777/date/v2/timespan"
)

// Cycle records one call to Machine.Compute.
type Cycle struct {
	ID    uuid.UUID
	Mode  rules.Mode
	Label string
	Value float64
	// Points is the size of the aggregated output set.
	Points int
	Err    error
	Span   timespan.TimeSpan
}

func newCycle(mode rules.Mode, start time.Time) Cycle {
	return Cycle{
		ID:   uuid.New(),
		Mode: mode,
		Span: timespan.BetweenTimes(start, start),
	}
}

func (c *Cycle) finish(end time.Time) {
	c.Span = timespan.BetweenTimes(c.Span.Start(), end)
}

// Duration is the wall time the cycle took.
func (c Cycle) Duration() time.Duration { return c.Span.Duration() }

func (c Cycle) Failed() bool { return c.Err != nil }

func (c Cycle) String() string {
	if c.Err != nil {
		return fmt.Sprintf("cycle %s (%s) failed: %v", c.ID, c.Mode, c.Err)
	}
	return fmt.Sprintf("cycle %s (%s) %q = %g", c.ID, c.Mode, c.Label, c.Value)
}
