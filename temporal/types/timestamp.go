package types

import (
	"cmp"
	"fmt"
	"time"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
)

// Timestamp represents a date and time of day without a time zone. It is
// stored as the number of 100ns ticks since 1970-01-01 00:00:00, with a
// precision of 0 to 7 fractional-second digits.
type Timestamp struct {
	ticks     int64
	precision uint8
	mode      mode.Mode
}

// NewTimestamp creates a Timestamp from calendar and clock fields.
// nanosecond is rounded half away from zero to precision digits; a rounding
// carry folds into the following second, minute, and so on. Returns an error
// wrapping ErrOutOfRange if a field is out of range or the result is outside
// the range of md.
func NewTimestamp(year, month, day, hour, minute, second, nanosecond, precision int, md mode.Mode) (*Timestamp, error) {
	precision, err := resolvePrecision(precision, md)
	if err != nil {
		return nil, err
	}
	date, err := NewDate(year, month, day, md)
	if err != nil {
		return nil, err
	}
	if err := checkClock(hour, minute, second); err != nil {
		return nil, err
	}
	frac, err := nanosToTicks(nanosecond, precision)
	if err != nil {
		return nil, err
	}
	return timestampFromParts(
		int64(date.days), calendar.TicksFromClock(hour, minute, second, frac), precision, md,
	)
}

// TimestampFromParts combines d and t into a Timestamp with the mode of d and
// the precision of t, capped at the maximum precision of the mode. The time
// of day is rounded to that precision, carrying into the next day if needed.
func TimestampFromParts(d *Date, t *Time) (*Timestamp, error) {
	precision := min(int(t.precision), d.mode.MaxPrecision())
	return timestampFromParts(int64(d.days), calendar.RoundTicks(t.ticks, precision), precision, d.mode)
}

func timestampFromParts(days, clock int64, precision int, md mode.Mode) (*Timestamp, error) {
	ticks := days*calendar.TicksPerDay + clock
	if lo, hi := tickRange(md); ticks < lo || ticks > hi {
		return nil, fmt.Errorf("%w: timestamp is outside the range of %v mode", ErrOutOfRange, md)
	}
	return &Timestamp{ticks: ticks, precision: uint8(precision), mode: md}, nil
}

// TimestampFromTicks creates a Timestamp from its encoding, the number of
// 100ns ticks since 1970-01-01 00:00:00, rounded to precision digits.
// Returns an error wrapping ErrOutOfRange if the result is outside the range
// of md.
func TimestampFromTicks(ticks int64, precision int, md mode.Mode) (*Timestamp, error) {
	precision, err := resolvePrecision(precision, md)
	if err != nil {
		return nil, err
	}
	lo, hi := tickRange(md)
	if ticks < lo || ticks > hi {
		return nil, fmt.Errorf("%w: %d ticks", ErrOutOfRange, ticks)
	}
	days := calendar.FloorDiv(ticks, calendar.TicksPerDay)
	clock := calendar.RoundTicks(ticks-days*calendar.TicksPerDay, precision)
	return timestampFromParts(days, clock, precision, md)
}

// TimestampFromTime converts the wall clock reading of t in UTC to a
// Timestamp rounded to precision digits.
func TimestampFromTime(t time.Time, precision int, md mode.Mode) (*Timestamp, error) {
	t = t.UTC()
	sec := t.Unix()
	days := calendar.FloorDiv(sec, secondsPerDay)
	if lo, hi := dayRange(md); days < lo || days > hi {
		return nil, fmt.Errorf("%w: %v", ErrOutOfRange, t)
	}
	ticks := sec*calendar.TicksPerSecond + int64(t.Nanosecond())/calendar.NanosPerTick
	return TimestampFromTicks(ticks, precision, md)
}

// tickRange returns the first and last ticks valid in md.
func tickRange(md mode.Mode) (int64, int64) {
	lo, hi := dayRange(md)
	return lo * calendar.TicksPerDay, (hi+1)*calendar.TicksPerDay - 1
}

// ParseTimestamp parses text in the canonical "[-]YYYY-MM-DD HH24:MI:SS[.FF]"
// format. The date and time may also be separated by "T". The precision is
// the number of fraction digits, capped at the maximum for md. Returns a
// *ParseError on failure.
func ParseTimestamp(text string, md mode.Mode) (*Timestamp, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	s := newScanner(text, md)
	ticks, precision, err := s.timestamp()
	if err != nil {
		return nil, err
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return &Timestamp{ticks: ticks, precision: uint8(precision), mode: md}, nil
}

// ParseTimestampMask parses text according to the format mask maskText. The
// mask must contain a year; the month and day default to 1 and clock fields
// default to zero.
func ParseTimestampMask(text, maskText string, md mode.Mode) (*Timestamp, error) {
	m, err := mask.Compile(maskText, mask.KindTimestamp)
	if err != nil {
		return nil, err
	}
	f, err := m.Parse(text, md)
	if err != nil {
		return nil, err
	}
	y, mon, day, err := civilFromFields(m, f)
	if err != nil {
		return nil, err
	}
	date, err := NewDate(y, mon, day, md)
	if err != nil {
		return nil, err
	}
	clock, err := clockFromFields(f)
	if err != nil {
		return nil, err
	}
	return timestampFromParts(int64(date.days), clock, f.Precision, md)
}

// Ticks returns the number of 100ns ticks since 1970-01-01 00:00:00.
func (ts *Timestamp) Ticks() int64 { return ts.ticks }

// Precision returns the number of significant fractional-second digits.
func (ts *Timestamp) Precision() int { return int(ts.precision) }

// Mode returns the mode ts was created in.
func (ts *Timestamp) Mode() mode.Mode { return ts.mode }

// split returns the day number and the ticks since midnight of ts.
func (ts *Timestamp) split() (int64, int64) {
	days := calendar.FloorDiv(ts.ticks, calendar.TicksPerDay)
	return days, ts.ticks - days*calendar.TicksPerDay
}

// Date returns the date part of ts.
func (ts *Timestamp) Date() *Date {
	days, _ := ts.split()
	return newDate(days, ts.mode)
}

// Time returns the time of day part of ts.
func (ts *Timestamp) Time() *Time {
	_, clock := ts.split()
	return &Time{ticks: clock, precision: ts.precision, mode: ts.mode}
}

// GoTime returns ts as a time.Time in UTC.
func (ts *Timestamp) GoTime() time.Time {
	sec := calendar.FloorDiv(ts.ticks, calendar.TicksPerSecond)
	frac := ts.ticks - sec*calendar.TicksPerSecond
	return time.Unix(sec, frac*calendar.NanosPerTick).UTC()
}

// AddInterval returns ts plus iv. The month component is applied first,
// clamping the day to the end of the resulting month, then the days, then
// the sub-day ticks, carrying into the date. Returns an error wrapping
// ErrOverflow if the result is outside the range of the mode.
func (ts *Timestamp) AddInterval(iv *Interval) (*Timestamp, error) {
	days, clock := ts.split()
	if iv.months != 0 {
		y, m, d, err := addMonths(days, int64(iv.months), ts.mode)
		if err != nil {
			return nil, err
		}
		days = calendar.DaysFromCivil(y, m, d)
	}

	precision := resultPrecision(ts.precision, iv.precision, ts.mode)
	clock, carry := wrapTicks(clock, calendar.RoundTicks(iv.SubDayTicks(), int(precision)))
	days += iv.Days() + carry

	if lo, hi := dayRange(ts.mode); days < lo || days > hi {
		return nil, fmt.Errorf("%w: %v plus %v is outside the range of %v mode", ErrOverflow, ts, iv, ts.mode)
	}
	return &Timestamp{
		ticks:     days*calendar.TicksPerDay + clock,
		precision: precision,
		mode:      ts.mode,
	}, nil
}

// SubInterval returns ts minus iv.
func (ts *Timestamp) SubInterval(iv *Interval) (*Timestamp, error) {
	return ts.AddInterval(iv.Negate())
}

// Sub returns the day-time interval from u to ts in the mode of ts. It never
// has a month component. The difference is rounded to the precision of the
// result.
func (ts *Timestamp) Sub(u *Timestamp) *Interval {
	precision := resultPrecision(ts.precision, u.precision, ts.mode)
	return &Interval{
		ticks:     calendar.RoundTicks(ts.ticks-u.ticks, int(precision)),
		precision: precision,
		mode:      ts.mode,
	}
}

// Compare compares ts with u. If ts is before u, it returns -1; if ts is
// after u, it returns +1; if they're the same, it returns 0.
func (ts *Timestamp) Compare(u *Timestamp) int {
	return cmp.Compare(ts.ticks, u.ticks)
}

// Extract returns the value of field f.
func (ts *Timestamp) Extract(f Field) (int64, error) {
	days, clock := ts.split()
	switch f {
	case FieldHour, FieldMinute, FieldSecond, FieldNanosecond:
		return extractClock(f, clock, "timestamp")
	default:
		y, m, d := calendar.CivilFromDays(days)
		return extractDate(f, days, y, m, d, "timestamp")
	}
}

func (ts *Timestamp) fields() mask.Fields {
	days, clock := ts.split()
	f := newDate(days, ts.mode).fields()
	clockFields(&f, clock, ts.precision)
	return f
}

// String returns the canonical representation of ts, such as
// "2024-02-29 13:45:00.25". The fraction has exactly as many digits as the
// precision of ts and is omitted when the precision is zero.
func (ts *Timestamp) String() string {
	return mask.Default(mask.KindTimestamp).Format(ts.fields())
}

// Format renders ts according to the format mask maskText.
func (ts *Timestamp) Format(maskText string) (string, error) {
	return formatMask(maskText, mask.KindTimestamp, ts.fields())
}

// MarshalText implements encoding.TextMarshaler.
func (ts *Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It parses text in the
// canonical format using the mode already set on ts, which defaults to
// mode.Standard.
func (ts *Timestamp) UnmarshalText(text []byte) error {
	t, err := ParseTimestamp(string(text), ts.mode)
	if err != nil {
		return err
	}
	*ts = *t
	return nil
}
