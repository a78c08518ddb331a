package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/sqltemporal/temporal/mode"
)

func TestLiteralErrors(t *testing.T) {
	t.Parallel()

	parsers := map[string]func(string, mode.Mode) (any, error){
		"date":      func(s string, md mode.Mode) (any, error) { return ParseDate(s, md) },
		"time":      func(s string, md mode.Mode) (any, error) { return ParseTime(s, md) },
		"timestamp": func(s string, md mode.Mode) (any, error) { return ParseTimestamp(s, md) },
	}

	for _, tc := range []struct {
		name  string
		kind  string
		text  string
		mode  mode.Mode
		field string
		pos   int
		msg   string
		rng   bool
	}{
		{
			name:  "day_past_month_end",
			kind:  "date",
			text:  "2023-02-29",
			field: "day",
			pos:   8,
			msg:   "29 is outside 1 to 28",
			rng:   true,
		},
		{
			name:  "month_13",
			kind:  "date",
			text:  "2024-13-01",
			field: "month",
			pos:   5,
			msg:   "13 is outside 1 to 12",
			rng:   true,
		},
		{
			name:  "year_10000",
			kind:  "date",
			text:  "10000-01-01",
			field: "year",
			pos:   0,
			msg:   "10000 is outside 1 to 9999",
			rng:   true,
		},
		{
			name:  "negative_year_standard",
			kind:  "date",
			text:  "-0001-01-01",
			field: "year",
			pos:   0,
			msg:   "-1 is outside 1 to 9999",
			rng:   true,
		},
		{
			name:  "year_before_julian_epoch",
			kind:  "date",
			text:  "-4713-01-01",
			mode:  mode.Oracle,
			field: "year",
			pos:   0,
			msg:   "-4713 is outside -4712 to 9999",
			rng:   true,
		},
		{
			name:  "slashes",
			kind:  "date",
			text:  "2024/01/01",
			field: "separator",
			pos:   4,
			msg:   `expected '-' but found '/'`,
		},
		{
			name:  "three_digit_month",
			kind:  "date",
			text:  "2024-001-01",
			field: "month",
			pos:   7,
			msg:   "too many digits",
		},
		{
			name:  "date_trailing",
			kind:  "date",
			text:  "2024-01-01 x",
			field: "input",
			pos:   11,
			msg:   `unexpected trailing characters "x"`,
		},
		{
			name:  "hour_24",
			kind:  "time",
			text:  "24:00:00",
			field: "hour",
			pos:   0,
			msg:   "24 is outside 0 to 23",
			rng:   true,
		},
		{
			name:  "minute_60",
			kind:  "time",
			text:  "12:60:00",
			field: "minute",
			pos:   3,
			msg:   "60 is outside 0 to 59",
			rng:   true,
		},
		{
			name:  "leap_second",
			kind:  "time",
			text:  "23:59:60",
			field: "second",
			pos:   6,
			msg:   "60 is outside 0 to 59",
			rng:   true,
		},
		{
			name:  "missing_second",
			kind:  "time",
			text:  "12:00",
			field: "separator",
			pos:   5,
			msg:   `expected ':' but reached end of input`,
		},
		{
			name:  "empty_fraction",
			kind:  "time",
			text:  "12:00:00.",
			field: "fraction",
			pos:   9,
			msg:   "expected digits but reached end of input",
		},
		{
			name:  "ten_fraction_digits",
			kind:  "time",
			text:  "12:00:00.1234567891",
			field: "fraction",
			pos:   18,
			msg:   "too many digits",
		},
		{
			name:  "rounds_into_next_minute",
			kind:  "time",
			text:  "12:00:59.9999999",
			field: "second",
			pos:   0,
			msg:   "rounding carries into the next minute",
			rng:   true,
		},
		{
			name:  "no_separator",
			kind:  "timestamp",
			text:  "2024-01-01_12:00:00",
			field: "separator",
			pos:   10,
			msg:   `expected space or "T" between date and time`,
		},
		{
			name:  "run_together",
			kind:  "timestamp",
			text:  "2024-01-0112:00:00",
			field: "day",
			pos:   10,
			msg:   "too many digits",
		},
		{
			name:  "missing_time",
			kind:  "timestamp",
			text:  "2024-01-01",
			field: "separator",
			pos:   10,
			msg:   `expected space or "T" between date and time`,
		},
		{
			name:  "rounds_past_range",
			kind:  "timestamp",
			text:  "9999-12-31 23:59:59.9999999",
			field: "second",
			pos:   11,
			msg:   "rounding carries past the end of the valid range",
			rng:   true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			_, err := parsers[tc.kind](tc.text, tc.mode)
			r.Error(err)
			r.ErrorIs(err, ErrParse)
			a.Equal(tc.rng, errors.Is(err, ErrOutOfRange))

			var perr *ParseError
			r.ErrorAs(err, &perr)
			a.Equal(tc.field, perr.Field)
			a.Equal(tc.pos, perr.Pos)
			a.Equal(tc.msg, perr.Msg)
			a.Equal(tc.text, perr.Text)
		})
	}
}

func TestLiteralAccepts(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	d, err := ParseDate("  2024-1-9\t", mode.Standard)
	r.NoError(err)
	a.Equal("2024-01-09", d.String())

	d, err = ParseDate("+2024-01-09", mode.Standard)
	r.NoError(err)
	a.Equal("2024-01-09", d.String())

	d, err = ParseDate("-4712-01-01", mode.Oracle)
	r.NoError(err)
	a.Equal("-4712-01-01", d.String())

	tm, err := ParseTime("7:05:09.50", mode.Standard)
	r.NoError(err)
	a.Equal("07:05:09.50", tm.String())
	a.Equal(2, tm.Precision())

	ts, err := ParseTimestamp("2024-01-09T07:05:09", mode.Standard)
	r.NoError(err)
	a.Equal("2024-01-09 07:05:09", ts.String())

	ts, err = ParseTimestamp("2024-01-09    07:05:09.123", mode.Oracle)
	r.NoError(err)
	a.Equal("2024-01-09 07:05:09.123", ts.String())

	// Rounding may carry across midnight.
	ts, err = ParseTimestamp("2024-01-09 23:59:59.99999999", mode.Standard)
	r.NoError(err)
	a.Equal("2024-01-10 00:00:00.000000", ts.String())
}
