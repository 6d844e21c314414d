package pkguid

import (
	"strconv"
	"time"
)

// Correlation generates correlation ids of the form "<day>-<uuid>", where day
// is the unix second of the start of the current UTC day. Ids from the same
// day share a prefix, which keeps them greppable by date.
type Correlation struct {
	now  func() time.Time
	uuid StringID
}

// NewCorrelation returns a correlation id generator using the wall clock and
// UUID for the random part.
func NewCorrelation() *Correlation {
	return &Correlation{now: time.Now, uuid: NewUUID()}
}

// Generate returns a new correlation id.
func (c *Correlation) Generate() string {
	t := c.now().UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return strconv.FormatInt(day.Unix(), 10) + "-" + c.uuid.Generate()
}
