package types

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/sqltemporal/temporal/mode"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestValueInterface(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		val   Value
		str   string
		field Field
		exp   int64
	}{
		{
			name:  "date",
			val:   mustDate(t, "2024-05-17", mode.Standard),
			str:   "2024-05-17",
			field: FieldQuarter,
			exp:   2,
		},
		{
			name:  "time",
			val:   mustTime(t, "08:30:00", mode.Oracle),
			str:   "08:30:00",
			field: FieldMinute,
			exp:   30,
		},
		{
			name:  "timestamp",
			val:   mustTimestamp(t, "2024-05-17 08:30:00", mode.Standard),
			str:   "2024-05-17 08:30:00",
			field: FieldISODayOfWeek,
			exp:   5,
		},
		{
			name:  "interval",
			val:   mustInterval(t, "-2 03", QualifierDayToHour, mode.Oracle),
			str:   "-02 03:00:00",
			field: FieldHour,
			exp:   -3,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			a.Equal(tc.str, tc.val.String())
			a.Equal(tc.str, fmt.Sprint(tc.val))
			v, err := tc.val.Extract(tc.field)
			require.NoError(t, err)
			a.Equal(tc.exp, v)
		})
	}
}

func TestField(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		exp  Field
	}{
		{"year", FieldYear},
		{"MONTH", FieldMonth},
		{" day ", FieldDay},
		{"Hour", FieldHour},
		{"minute", FieldMinute},
		{"second", FieldSecond},
		{"nanosecond", FieldNanosecond},
		{"dow", FieldDayOfWeek},
		{"day_of_week", FieldDayOfWeek},
		{"isodow", FieldISODayOfWeek},
		{"doy", FieldDayOfYear},
		{"Day_Of_Year", FieldDayOfYear},
		{"quarter", FieldQuarter},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f, err := ParseField(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, f)

			// String round-trips.
			f, err = ParseField(f.String())
			require.NoError(t, err)
			assert.Equal(t, tc.exp, f)
		})
	}

	_, err := ParseField("week")
	require.EqualError(t, err, `parse: field: unknown field at position 0 in "week"`)
	require.ErrorIs(t, err, ErrParse)
	assert.Equal(t, "Field(42)", Field(42).String())
}

func TestPrecisionHelpers(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	p, err := resolvePrecision(9, mode.Standard)
	a.NoError(err)
	a.Equal(6, p)
	p, err = resolvePrecision(9, mode.Oracle)
	a.NoError(err)
	a.Equal(7, p)
	_, err = resolvePrecision(0, mode.Mode(9))
	a.EqualError(err, "mode: Mode(9)")

	a.Equal(uint8(6), resultPrecision(7, 2, mode.Standard))
	a.Equal(uint8(7), resultPrecision(7, 2, mode.Oracle))

	a.Equal(0, tickPrecision(0))
	a.Equal(0, tickPrecision(30_000_000))
	a.Equal(1, tickPrecision(5_000_000))
	a.Equal(7, tickPrecision(1))

	v, ok := mulChecked(3, -4)
	a.True(ok)
	a.Equal(int64(-12), v)
	_, ok = mulChecked(1<<62, 2)
	a.False(ok)
	_, ok = mulChecked(-1, -1<<63)
	a.False(ok)
}

func TestCanonicalGolden(t *testing.T) {
	t.Parallel()

	for _, md := range []mode.Mode{mode.Standard, mode.Oracle} {
		t.Run(md.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			for _, v := range []Value{
				mustDate(t, "2024-02-29", md),
				mustDate(t, "0001-01-01", md),
				mustTime(t, "13:45:00.25", md),
				mustTime(t, "23:59:59.1234567", md),
				mustTimestamp(t, "1970-01-01 00:00:00", md),
				mustTimestamp(t, "2024-02-29T13:45:00.5", md),
				mustInterval(t, "1-2", QualifierYearToMonth, md),
				mustInterval(t, "-1 02:03:04.5", QualifierDayToSecond, md),
				mustInterval(t, "36:30", QualifierHourToMinute, md),
				mustInterval(t, "1-2 -3 04:05:06", QualifierYearToSecond, md),
				mustInterval(t, "0", QualifierSecond, md),
			} {
				fmt.Fprintf(&buf, "%-17T %v\n", v, v)
			}

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, "canonical_"+md.String(), buf.Bytes())
		})
	}
}

func TestMaskGolden(t *testing.T) {
	t.Parallel()

	ts := mustTimestamp(t, "2024-02-09 13:45:07.25", mode.Standard)
	var buf bytes.Buffer
	for _, m := range []string{
		"YYYY-MM-DD",
		"DD/MM/YY",
		"HH12:MI:SS AM",
		"DDD D",
		"SSSSS.FF3",
		`YYYY "week day" D`,
		"HH24:MI:SS.FF",
		"FF9",
		"yyyymmddhh24miss",
	} {
		out, err := ts.Format(m)
		require.NoError(t, err)
		fmt.Fprintf(&buf, "%-18s => %s\n", m, out)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "timestamp_masks", buf.Bytes())
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	ts := mustTimestamp(t, "2024-02-29 13:45:00.5", mode.Oracle)
	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			iv, err := NewDayTime(i%2 == 0, int64(i), i%24, 0, 0, 0, 0, mode.Oracle)
			if err != nil {
				return err
			}
			res, err := ts.AddInterval(iv)
			if err != nil {
				return err
			}
			back, err := res.SubInterval(iv)
			if err != nil {
				return err
			}
			if back.Compare(ts) != 0 {
				return fmt.Errorf("%v + %v - %v = %v", ts, iv, iv, back)
			}
			parsed, err := ParseInterval(iv.String(), iv.Qualifier(), mode.Oracle)
			if err != nil {
				return err
			}
			if parsed.Compare(iv) != 0 {
				return fmt.Errorf("parsed %v as %v", iv, parsed)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
