package types

import (
	"cmp"
	"fmt"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
)

// Time represents a time of day without a date or time zone. It is stored as
// the number of 100ns ticks since midnight, with a precision of 0 to 7
// fractional-second digits.
type Time struct {
	ticks     int64
	precision uint8
	mode      mode.Mode
}

// NewTime creates a Time from clock fields. nanosecond is rounded half away
// from zero to precision digits. Returns an error wrapping ErrOutOfRange if a
// field is out of range, precision is negative, or rounding carries into
// second 60.
func NewTime(hour, minute, second, nanosecond, precision int, md mode.Mode) (*Time, error) {
	precision, err := resolvePrecision(precision, md)
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
	if second == calendar.SecondsPerMinute-1 && frac == calendar.TicksPerSecond {
		return nil, fmt.Errorf(
			"%w: %02d:%02d:%02d.%09d rounds into the next minute",
			ErrOutOfRange, hour, minute, second, nanosecond,
		)
	}
	return &Time{
		ticks:     calendar.TicksFromClock(hour, minute, second, frac),
		precision: uint8(precision),
		mode:      md,
	}, nil
}

// checkClock validates hour, minute, and second.
func checkClock(hour, minute, second int) error {
	switch {
	case hour < 0 || hour >= calendar.HoursPerDay:
		return fmt.Errorf("%w: hour %d", ErrOutOfRange, hour)
	case minute < 0 || minute >= calendar.MinutesPerHour:
		return fmt.Errorf("%w: minute %d", ErrOutOfRange, minute)
	case second < 0 || second >= calendar.SecondsPerMinute:
		return fmt.Errorf("%w: second %d", ErrOutOfRange, second)
	}
	return nil
}

// TimeFromTicks creates a Time from its encoding, the number of 100ns ticks
// since midnight, rounded to precision digits. Returns an error wrapping
// ErrOutOfRange if ticks is not within a day or rounds to midnight of the
// next day.
func TimeFromTicks(ticks uint64, precision int, md mode.Mode) (*Time, error) {
	precision, err := resolvePrecision(precision, md)
	if err != nil {
		return nil, err
	}
	if ticks >= uint64(calendar.TicksPerDay) {
		return nil, fmt.Errorf("%w: %d ticks exceeds one day", ErrOutOfRange, ticks)
	}
	t := calendar.RoundTicks(int64(ticks), precision)
	if t >= calendar.TicksPerDay {
		return nil, fmt.Errorf("%w: %d ticks rounds to the next day", ErrOutOfRange, ticks)
	}
	return &Time{ticks: t, precision: uint8(precision), mode: md}, nil
}

// ParseTime parses text in the canonical "HH24:MI:SS[.FF]" format. The
// precision is the number of fraction digits, capped at the maximum for md.
// Returns a *ParseError on failure.
func ParseTime(text string, md mode.Mode) (*Time, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	s := newScanner(text, md)
	start := s.pos
	ticks, precision, carried, err := s.clock()
	if err != nil {
		return nil, err
	}
	if carried {
		return nil, s.rangeErrorf(start, "second", "rounding carries into the next minute")
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return &Time{ticks: ticks, precision: uint8(precision), mode: md}, nil
}

// ParseTimeMask parses text according to the format mask maskText. Fields
// missing from the mask default to zero, and the precision is the number of
// fraction digits parsed.
func ParseTimeMask(text, maskText string, md mode.Mode) (*Time, error) {
	m, err := mask.Compile(maskText, mask.KindTime)
	if err != nil {
		return nil, err
	}
	f, err := m.Parse(text, md)
	if err != nil {
		return nil, err
	}
	ticks, err := clockFromFields(f)
	if err != nil {
		return nil, err
	}
	if f.Second == calendar.SecondsPerMinute-1 && f.Ticks == calendar.TicksPerSecond {
		return nil, fmt.Errorf("%w: %q rounds into the next minute", ErrOutOfRange, text)
	}
	return &Time{ticks: ticks, precision: uint8(f.Precision), mode: md}, nil
}

// clockFromFields validates the clock fields of f and returns them as ticks
// since midnight.
func clockFromFields(f mask.Fields) (int64, error) {
	if f.Hour >= calendar.HoursPerDay || f.Minute >= calendar.MinutesPerHour || f.Second >= calendar.SecondsPerMinute {
		return 0, fmt.Errorf("%w: %02d:%02d:%02d", ErrOutOfRange, f.Hour, f.Minute, f.Second)
	}
	return calendar.TicksFromClock(int(f.Hour), int(f.Minute), int(f.Second), f.Ticks), nil
}

// Ticks returns the number of 100ns ticks since midnight.
func (t *Time) Ticks() uint64 { return uint64(t.ticks) }

// Precision returns the number of significant fractional-second digits.
func (t *Time) Precision() int { return int(t.precision) }

// Mode returns the mode t was created in.
func (t *Time) Mode() mode.Mode { return t.mode }

// Clock returns the hour, minute, second, and nanosecond of t.
func (t *Time) Clock() (hour, minute, second, nanosecond int) {
	h, m, s, frac := calendar.ClockFromTicks(t.ticks)
	return int(h), m, s, int(frac * calendar.NanosPerTick)
}

// Hour returns the hour of t, from 0 to 23.
func (t *Time) Hour() int {
	h, _, _, _ := t.Clock()
	return h
}

// Minute returns the minute of t.
func (t *Time) Minute() int {
	_, m, _, _ := t.Clock()
	return m
}

// Second returns the second of t.
func (t *Time) Second() int {
	_, _, s, _ := t.Clock()
	return s
}

// Nanosecond returns the fraction of the second of t in nanoseconds.
func (t *Time) Nanosecond() int {
	_, _, _, ns := t.Clock()
	return ns
}

// AddTicks adds n ticks, rounded to the precision of t, and wraps around
// midnight. It returns the result and the number of days carried, which is
// negative when the result wrapped backward.
func (t *Time) AddTicks(n int64) (*Time, int64) {
	ticks, carry := wrapTicks(t.ticks, calendar.RoundTicks(n, int(t.precision)))
	return &Time{ticks: ticks, precision: t.precision, mode: t.mode}, carry
}

// wrapTicks adds n to the tick of the day ticks and returns the resulting
// tick of the day and the number of days carried.
func wrapTicks(ticks, n int64) (int64, int64) {
	carry := calendar.FloorDiv(n, calendar.TicksPerDay)
	sum := ticks + calendar.FloorMod(n, calendar.TicksPerDay)
	if sum >= calendar.TicksPerDay {
		sum -= calendar.TicksPerDay
		carry++
	}
	return sum, carry
}

// AddInterval returns t plus iv. Returns an error wrapping
// ErrIncompatibleClass if iv has a year-month component, or ErrOverflow if
// the result is not within the same day.
func (t *Time) AddInterval(iv *Interval) (*Time, error) {
	if iv.months != 0 {
		return nil, fmt.Errorf("%w: cannot add %v interval to time", ErrIncompatibleClass, iv.Class())
	}
	precision := resultPrecision(t.precision, iv.precision, t.mode)
	ticks := t.ticks + calendar.RoundTicks(iv.ticks, int(precision))
	if ticks < 0 || ticks >= calendar.TicksPerDay {
		return nil, fmt.Errorf("%w: %v plus %v is outside the day", ErrOverflow, t, iv)
	}
	return &Time{ticks: ticks, precision: precision, mode: t.mode}, nil
}

// SubInterval returns t minus iv.
func (t *Time) SubInterval(iv *Interval) (*Time, error) {
	return t.AddInterval(iv.Negate())
}

// Sub returns the day-time interval from u to t in the mode of t, rounded to
// the precision of the result.
func (t *Time) Sub(u *Time) *Interval {
	precision := resultPrecision(t.precision, u.precision, t.mode)
	return &Interval{
		ticks:     calendar.RoundTicks(t.ticks-u.ticks, int(precision)),
		precision: precision,
		mode:      t.mode,
	}
}

// Compare compares t with u. If t is before u, it returns -1; if t is after
// u, it returns +1; if they're the same, it returns 0.
func (t *Time) Compare(u *Time) int {
	return cmp.Compare(t.ticks, u.ticks)
}

// Extract returns the value of field f. Returns an error wrapping
// ErrIncompatibleClass for date fields.
func (t *Time) Extract(f Field) (int64, error) {
	return extractClock(f, t.ticks, "time")
}

// extractClock returns the clock field f for ticks since midnight.
func extractClock(f Field, ticks int64, kind string) (int64, error) {
	h, m, s, frac := calendar.ClockFromTicks(ticks)
	switch f {
	case FieldHour:
		return h, nil
	case FieldMinute:
		return int64(m), nil
	case FieldSecond:
		return int64(s), nil
	case FieldNanosecond:
		return frac * calendar.NanosPerTick, nil
	default:
		return 0, fmt.Errorf("%w: %v has no %v field", ErrIncompatibleClass, kind, f)
	}
}

// clockFields sets the clock fields of f from ticks since midnight.
func clockFields(f *mask.Fields, ticks int64, precision uint8) {
	h, m, s, frac := calendar.ClockFromTicks(ticks)
	f.Hour = h
	f.Minute = int64(m)
	f.Second = int64(s)
	f.Ticks = frac
	f.Precision = int(precision)
}

func (t *Time) fields() mask.Fields {
	var f mask.Fields
	clockFields(&f, t.ticks, t.precision)
	return f
}

// String returns the canonical representation of t, such as
// "13:45:00.250000". The fraction has exactly as many digits as the
// precision of t and is omitted when the precision is zero.
func (t *Time) String() string {
	return mask.Default(mask.KindTime).Format(t.fields())
}

// Format renders t according to the format mask maskText.
func (t *Time) Format(maskText string) (string, error) {
	return formatMask(maskText, mask.KindTime, t.fields())
}

// ToInterval returns the day-time interval from midnight to t.
func (t *Time) ToInterval() *Interval {
	return &Interval{ticks: t.ticks, precision: t.precision, mode: t.mode}
}

// MarshalText implements encoding.TextMarshaler.
func (t *Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It parses text in the
// canonical format using the mode already set on t, which defaults to
// mode.Standard.
func (t *Time) UnmarshalText(text []byte) error {
	tm, err := ParseTime(string(text), t.mode)
	if err != nil {
		return err
	}
	*t = *tm
	return nil
}
