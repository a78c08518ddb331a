package types

import (
	"fmt"
	"math"

	"github.com/jonboulle/clockwork"
	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mode"
)

// Now returns the current time reported by clock, in UTC, as a Timestamp
// rounded to precision digits. Pass clockwork.NewRealClock() for the system
// clock.
func Now(clock clockwork.Clock, precision int, md mode.Mode) (*Timestamp, error) {
	return TimestampFromTime(clock.Now(), precision, md)
}

// CurrentDate returns the current UTC date reported by clock. The time of
// day is truncated, never rounded.
func CurrentDate(clock clockwork.Clock, md mode.Mode) (*Date, error) {
	days := calendar.FloorDiv(clock.Now().Unix(), secondsPerDay)
	if days < math.MinInt32 || days > math.MaxInt32 {
		return nil, fmt.Errorf("%w: day number %d", ErrOutOfRange, days)
	}
	return DateFromDays(int32(days), md)
}

const secondsPerDay = calendar.HoursPerDay * calendar.MinutesPerHour * calendar.SecondsPerMinute

// CurrentTime returns the current UTC time of day reported by clock,
// rounded to precision digits.
func CurrentTime(clock clockwork.Clock, precision int, md mode.Mode) (*Time, error) {
	ts, err := Now(clock, precision, md)
	if err != nil {
		return nil, err
	}
	return ts.Time(), nil
}
