package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakstep/internal/constants"
)

// Clock is the source of the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant until moved
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (c *FixedClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks that timezone names a loadable location
func ValidateTimezone(timezone string) error {
	if _, err := LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return nil
}

// NewClock returns a SystemClock for the given timezone
func NewClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

// FormatTimestamp renders t as local ISO-8601 without an offset
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampFormat)
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a persisted timestamp. Values without an offset are
// read in loc; RFC 3339 values keep their own offset.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
