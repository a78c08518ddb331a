package types

import (
	"cmp"
	"fmt"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
)

// Date represents a calendar date without a time of day. It is stored as the
// number of days since 1970-01-01.
type Date struct {
	days int32
	mode mode.Mode
}

// NewDate creates a Date from year, month, and day. Returns an error wrapping
// ErrOutOfRange if year is outside the range of md, month is not between 1
// and 12, or day exceeds the length of the month.
func NewDate(year, month, day int, md mode.Mode) (*Date, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	if y := int64(year); y < md.MinYear() || y > md.MaxYear() {
		return nil, fmt.Errorf(
			"%w: year %d is outside %d to %d",
			ErrOutOfRange, year, md.MinYear(), md.MaxYear(),
		)
	}
	if month < 1 || month > calendar.MonthsPerYear {
		return nil, fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	if last := calendar.DaysInMonth(int64(year), month); day < 1 || day > last {
		return nil, fmt.Errorf("%w: day %d of %04d-%02d", ErrOutOfRange, day, year, month)
	}
	return newDate(calendar.DaysFromCivil(int64(year), month, day), md), nil
}

// DateFromDays creates a Date from its encoding, the number of days since
// 1970-01-01. Returns an error wrapping ErrOutOfRange if days is outside the
// range of md.
func DateFromDays(days int32, md mode.Mode) (*Date, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	if lo, hi := dayRange(md); int64(days) < lo || int64(days) > hi {
		return nil, fmt.Errorf("%w: day number %d", ErrOutOfRange, days)
	}
	return newDate(int64(days), md), nil
}

// ParseDate parses text in the canonical "[-]YYYY-MM-DD" format. The year may
// have any number of digits. Returns a *ParseError on failure.
func ParseDate(text string, md mode.Mode) (*Date, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	s := newScanner(text, md)
	days, err := s.date()
	if err != nil {
		return nil, err
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return newDate(days, md), nil
}

// ParseDateMask parses text according to the format mask maskText.
func ParseDateMask(text, maskText string, md mode.Mode) (*Date, error) {
	m, err := mask.Compile(maskText, mask.KindDate)
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
	return NewDate(y, mon, day, md)
}

// civilFromFields returns the date parsed by m. The mask must contain a
// year; the month and day default to 1.
func civilFromFields(m *mask.Mask, f mask.Fields) (int, int, int, error) {
	if !m.Has(mask.TokenYear) {
		return 0, 0, 0, fmt.Errorf("%w: mask %q has no YYYY element", ErrInvalidFormat, m)
	}
	month, day := int64(1), int64(1)
	if f.Has(mask.TokenMonth) {
		month = f.Month
	}
	if f.Has(mask.TokenDay) {
		day = f.Day
	}
	return int(f.Year), int(month), int(day), nil
}

// newDate creates a Date from a day number already validated for md.
func newDate(days int64, md mode.Mode) *Date {
	return &Date{days: int32(days), mode: md}
}

// Days returns the number of days since 1970-01-01.
func (d *Date) Days() int32 { return d.days }

// Mode returns the mode d was created in.
func (d *Date) Mode() mode.Mode { return d.mode }

// YMD returns the year, month, and day of d.
func (d *Date) YMD() (year, month, day int) {
	y, m, dd := calendar.CivilFromDays(int64(d.days))
	return int(y), m, dd
}

// Year returns the year of d. Oracle mode years before 1 count 1 BC as 0.
func (d *Date) Year() int {
	y, _, _ := d.YMD()
	return y
}

// Month returns the month of d, from 1 to 12.
func (d *Date) Month() int {
	_, m, _ := d.YMD()
	return m
}

// Day returns the day of the month of d.
func (d *Date) Day() int {
	_, _, dd := d.YMD()
	return dd
}

// DayOfWeek returns the day of the week of d, with Sunday as 0.
func (d *Date) DayOfWeek() int { return calendar.DayOfWeek(int64(d.days)) }

// DayOfYear returns the day of the year of d, starting at 1.
func (d *Date) DayOfYear() int {
	y, m, dd := calendar.CivilFromDays(int64(d.days))
	return calendar.DayOfYear(y, m, dd)
}

// AddDays returns d plus n days. Returns an error wrapping ErrOverflow if the
// result is outside the range of the mode.
func (d *Date) AddDays(n int64) (*Date, error) {
	lo, hi := dayRange(d.mode)
	if n < lo-hi || n > hi-lo {
		return nil, fmt.Errorf("%w: %v plus %d days", ErrOverflow, d, n)
	}
	days := int64(d.days) + n
	if days < lo || days > hi {
		return nil, fmt.Errorf("%w: %v plus %d days", ErrOverflow, d, n)
	}
	return newDate(days, d.mode), nil
}

// AddMonths returns d plus n months. If the day of d does not exist in the
// resulting month, it is clamped to the last day of that month, so
// 2024-01-31 plus one month is 2024-02-29.
func (d *Date) AddMonths(n int64) (*Date, error) {
	y, m, dd, err := addMonths(int64(d.days), n, d.mode)
	if err != nil {
		return nil, err
	}
	return newDate(calendar.DaysFromCivil(y, m, dd), d.mode), nil
}

// addMonths adds n months to the date with day number days and clamps the
// day to the end of the resulting month.
func addMonths(days, n int64, md mode.Mode) (int64, int, int, error) {
	if n < -maxIntervalMonths || n > maxIntervalMonths {
		return 0, 0, 0, fmt.Errorf("%w: adding %d months", ErrOverflow, n)
	}
	y, m, dd := calendar.CivilFromDays(days)
	y, m, dd = calendar.AddMonths(y, m, dd, n)
	if y < md.MinYear() || y > md.MaxYear() {
		return 0, 0, 0, fmt.Errorf("%w: year %d is outside %d to %d", ErrOverflow, y, md.MinYear(), md.MaxYear())
	}
	return y, m, dd, nil
}

// AddInterval returns d plus iv. The date is treated as midnight, the
// interval added as for [Timestamp.AddInterval], and the time of day of the
// result discarded.
func (d *Date) AddInterval(iv *Interval) (*Date, error) {
	ts, err := d.ToTimestamp().AddInterval(iv)
	if err != nil {
		return nil, err
	}
	return ts.Date(), nil
}

// SubInterval returns d minus iv.
func (d *Date) SubInterval(iv *Interval) (*Date, error) {
	return d.AddInterval(iv.Negate())
}

// Sub returns the number of days from u to d.
func (d *Date) Sub(u *Date) int64 {
	return int64(d.days) - int64(u.days)
}

// Compare compares d with u. If d is before u, it returns -1; if d is after
// u, it returns +1; if they're the same, it returns 0.
func (d *Date) Compare(u *Date) int {
	return cmp.Compare(d.days, u.days)
}

// ToTimestamp converts d to a Timestamp at midnight.
func (d *Date) ToTimestamp() *Timestamp {
	return &Timestamp{ticks: int64(d.days) * calendar.TicksPerDay, mode: d.mode}
}

// Extract returns the value of field f. Returns an error wrapping
// ErrIncompatibleClass for time fields.
func (d *Date) Extract(f Field) (int64, error) {
	y, m, dd := calendar.CivilFromDays(int64(d.days))
	return extractDate(f, int64(d.days), y, m, dd, "date")
}

// extractDate returns the date field f for day number days, which falls on
// y-m-d.
func extractDate(f Field, days, y int64, m, d int, kind string) (int64, error) {
	switch f {
	case FieldYear:
		return y, nil
	case FieldMonth:
		return int64(m), nil
	case FieldDay:
		return int64(d), nil
	case FieldDayOfWeek:
		return int64(calendar.DayOfWeek(days)), nil
	case FieldISODayOfWeek:
		return int64(calendar.ISODayOfWeek(days)), nil
	case FieldDayOfYear:
		return int64(calendar.DayOfYear(y, m, d)), nil
	case FieldQuarter:
		return int64((m-1)/3 + 1), nil
	default:
		return 0, fmt.Errorf("%w: %v has no %v field", ErrIncompatibleClass, kind, f)
	}
}

// fields returns the mask fields for d.
func (d *Date) fields() mask.Fields {
	y, m, dd := calendar.CivilFromDays(int64(d.days))
	return mask.Fields{
		Year:      y,
		Month:     int64(m),
		Day:       int64(dd),
		DayOfWeek: calendar.DayOfWeek(int64(d.days)),
		DayOfYear: calendar.DayOfYear(y, m, dd),
	}
}

// String returns the canonical representation of d, such as "2024-02-29".
// Years before 1 are rendered with a minus sign.
func (d *Date) String() string {
	return mask.Default(mask.KindDate).Format(d.fields())
}

// Format renders d according to the format mask maskText.
func (d *Date) Format(maskText string) (string, error) {
	return formatMask(maskText, mask.KindDate, d.fields())
}

// MarshalText implements encoding.TextMarshaler.
func (d *Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It parses text in the
// canonical format using the mode already set on d, which defaults to
// mode.Standard.
func (d *Date) UnmarshalText(text []byte) error {
	date, err := ParseDate(string(text), d.mode)
	if err != nil {
		return err
	}
	*d = *date
	return nil
}
