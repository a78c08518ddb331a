package types

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/sqltemporal/temporal/mode"
)

func TestNow(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	clock := clockwork.NewFakeClockAt(time.Date(2024, 2, 29, 13, 45, 0, 123_456_789, time.UTC))

	ts, err := Now(clock, 3, mode.Standard)
	r.NoError(err)
	a.Equal("2024-02-29 13:45:00.123", ts.String())

	ts, err = Now(clock, 9, mode.Oracle)
	r.NoError(err)
	a.Equal("2024-02-29 13:45:00.1234567", ts.String())

	d, err := CurrentDate(clock, mode.Standard)
	r.NoError(err)
	a.Equal("2024-02-29", d.String())

	tm, err := CurrentTime(clock, 0, mode.Standard)
	r.NoError(err)
	a.Equal("13:45:00", tm.String())

	clock.Advance(36 * time.Hour)
	d, err = CurrentDate(clock, mode.Standard)
	r.NoError(err)
	a.Equal("2024-03-02", d.String())
	tm, err = CurrentTime(clock, 2, mode.Standard)
	r.NoError(err)
	a.Equal("01:45:00.12", tm.String())
}

func TestNowZones(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// The wall clock of the fake clock's location is ignored.
	est := time.FixedZone("EST", -5*60*60)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 22, 0, 0, 0, est))
	d, err := CurrentDate(clock, mode.Standard)
	r.NoError(err)
	a.Equal("2024-01-02", d.String())

	ts, err := Now(clock, 0, mode.Standard)
	r.NoError(err)
	a.Equal("2024-01-02 03:00:00", ts.String())
}

func TestNowBeforeEpoch(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	clock := clockwork.NewFakeClockAt(time.Date(1969, 12, 31, 23, 59, 59, 500_000_000, time.UTC))
	d, err := CurrentDate(clock, mode.Standard)
	r.NoError(err)
	a.Equal("1969-12-31", d.String())

	ts, err := Now(clock, 0, mode.Standard)
	r.NoError(err)
	a.Equal("1970-01-01 00:00:00", ts.String())

	ts, err = Now(clock, 1, mode.Standard)
	r.NoError(err)
	a.Equal("1969-12-31 23:59:59.5", ts.String())
}

func TestNowOutOfRange(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	clock := clockwork.NewFakeClockAt(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := Now(clock, 0, mode.Standard)
	r.ErrorIs(err, ErrOutOfRange)
	_, err = CurrentDate(clock, mode.Oracle)
	r.ErrorIs(err, ErrOutOfRange)
	_, err = CurrentTime(clock, 0, mode.Standard)
	r.ErrorIs(err, ErrOutOfRange)
	_, err = Now(clock, -1, mode.Standard)
	r.ErrorIs(err, ErrOutOfRange)
}
