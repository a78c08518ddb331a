package types

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
)

// Interval bounds. Year-month intervals span at most 178,000,000 years and
// day-time intervals at most 10,000,000 days in either direction.
const (
	maxIntervalYears  = 178_000_000
	maxIntervalMonths = maxIntervalYears * calendar.MonthsPerYear
	maxIntervalDays   = 10_000_000
	maxIntervalTicks  = maxIntervalDays * calendar.TicksPerDay
)

// Interval represents a span of time as two independent signed components: a
// number of months and a number of 100ns ticks. A year-month interval has
// only months, a day-time interval only ticks, and a mixed interval, the
// result of combining both kinds, has both.
type Interval struct {
	months    int32
	ticks     int64
	precision uint8
	mode      mode.Mode
}

// NewYearMonth creates a year-month interval from the magnitudes years and
// months, negated if negative is true. months must be less than 12 unless
// years is zero. Returns an error wrapping ErrOutOfRange if a field is
// negative or the interval exceeds 178,000,000 years.
func NewYearMonth(negative bool, years, months int64, md mode.Mode) (*Interval, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	switch {
	case years < 0 || months < 0:
		return nil, fmt.Errorf("%w: negative interval field; use negative to set the sign", ErrOutOfRange)
	case years > 0 && months >= calendar.MonthsPerYear:
		return nil, fmt.Errorf("%w: month %d", ErrOutOfRange, months)
	case years > maxIntervalYears || months > maxIntervalMonths:
		return nil, fmt.Errorf("%w: interval exceeds %d years", ErrOutOfRange, maxIntervalYears)
	}
	total := years*calendar.MonthsPerYear + months
	if total > maxIntervalMonths {
		return nil, fmt.Errorf("%w: interval exceeds %d years", ErrOutOfRange, maxIntervalYears)
	}
	if negative {
		total = -total
	}
	return &Interval{months: int32(total), mode: md}, nil
}

// NewDayTime creates a day-time interval from the magnitudes of its fields,
// negated if negative is true. hours, minutes, and seconds must be within
// their usual ranges. nanoseconds is rounded half away from zero to precision
// digits. Returns an error wrapping ErrOutOfRange if a field is out of range
// or the interval exceeds 10,000,000 days.
func NewDayTime(negative bool, days int64, hours, minutes, seconds, nanoseconds, precision int, md mode.Mode) (*Interval, error) {
	precision, err := resolvePrecision(precision, md)
	if err != nil {
		return nil, err
	}
	if days < 0 || days > maxIntervalDays {
		return nil, fmt.Errorf("%w: day %d", ErrOutOfRange, days)
	}
	if err := checkClock(hours, minutes, seconds); err != nil {
		return nil, err
	}
	frac, err := nanosToTicks(nanoseconds, precision)
	if err != nil {
		return nil, err
	}
	ticks := days*calendar.TicksPerDay + calendar.TicksFromClock(hours, minutes, seconds, frac)
	if ticks > maxIntervalTicks {
		return nil, fmt.Errorf("%w: interval exceeds %d days", ErrOutOfRange, maxIntervalDays)
	}
	if negative {
		ticks = -ticks
	}
	return &Interval{ticks: ticks, precision: uint8(precision), mode: md}, nil
}

// IntervalFromEncoding creates an Interval from its encoding: a signed month
// count and a signed tick count, the latter rounded to precision digits.
// Returns an error wrapping ErrOutOfRange if either component exceeds the
// interval bounds.
func IntervalFromEncoding(months int32, ticks int64, precision int, md mode.Mode) (*Interval, error) {
	precision, err := resolvePrecision(precision, md)
	if err != nil {
		return nil, err
	}
	if months < -maxIntervalMonths || months > maxIntervalMonths {
		return nil, fmt.Errorf("%w: %d months", ErrOutOfRange, months)
	}
	if ticks < -maxIntervalTicks || ticks > maxIntervalTicks {
		return nil, fmt.Errorf("%w: %d ticks", ErrOutOfRange, ticks)
	}
	return &Interval{
		months:    months,
		ticks:     calendar.RoundTicks(ticks, precision),
		precision: uint8(precision),
		mode:      md,
	}, nil
}

// ParseInterval parses text as an interval literal with the fields selected
// by q. The leading field may have any number of digits up to the interval
// bounds; later fields are limited to their usual ranges. A fraction is
// allowed only on the trailing field of a day-time qualifier. The mixed
// YEAR TO SECOND qualifier expects a year-month and a day-time literal
// separated by a space, each with its own optional sign. Returns a
// *ParseError on failure.
func ParseInterval(text string, q Qualifier, md mode.Mode) (*Interval, error) {
	if err := checkMode(md); err != nil {
		return nil, err
	}
	if !q.Valid() {
		err := mask.NewParseError(q.String(), 0, "qualifier", "unknown interval qualifier")
		err.Err = ErrOutOfRange
		return nil, err
	}
	s := newScanner(text, md)
	months, ticks, precision, err := s.interval(q)
	if err != nil {
		return nil, err
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return &Interval{months: int32(months), ticks: ticks, precision: uint8(precision), mode: md}, nil
}

// ParseIntervalMask parses text according to the format mask maskText. The
// leading sign applies to every field. Fields are combined into a single
// month count and a single tick count, so the mask "HH24:MI" parses
// "36:30" as 36.5 hours.
func ParseIntervalMask(text, maskText string, md mode.Mode) (*Interval, error) {
	m, err := mask.Compile(maskText, mask.KindInterval)
	if err != nil {
		return nil, err
	}
	f, err := m.Parse(text, md)
	if err != nil {
		return nil, err
	}

	if f.Year > maxIntervalYears || f.Month > maxIntervalMonths {
		return nil, fmt.Errorf("%w: interval exceeds %d years", ErrOutOfRange, maxIntervalYears)
	}
	months := f.Year*calendar.MonthsPerYear + f.Month
	if months > maxIntervalMonths {
		return nil, fmt.Errorf("%w: interval exceeds %d years", ErrOutOfRange, maxIntervalYears)
	}

	var ticks int64
	for _, part := range []struct {
		value int64
		unit  int64
	}{
		{f.Day, calendar.TicksPerDay},
		{f.Hour, calendar.TicksPerHour},
		{f.Minute, calendar.TicksPerMinute},
		{f.Second, calendar.TicksPerSecond},
	} {
		if part.value > maxIntervalTicks/part.unit {
			return nil, fmt.Errorf("%w: interval exceeds %d days", ErrOutOfRange, maxIntervalDays)
		}
		ticks += part.value * part.unit
	}
	ticks += f.Ticks
	if ticks > maxIntervalTicks {
		return nil, fmt.Errorf("%w: interval exceeds %d days", ErrOutOfRange, maxIntervalDays)
	}

	if f.Negative {
		months, ticks = -months, -ticks
	}
	return &Interval{months: int32(months), ticks: ticks, precision: uint8(f.Precision), mode: md}, nil
}

// Months returns the month component of iv.
func (iv *Interval) Months() int32 { return iv.months }

// Ticks returns the day-time component of iv in 100ns ticks.
func (iv *Interval) Ticks() int64 { return iv.ticks }

// Days returns the whole days of the day-time component of iv, truncated
// toward zero.
func (iv *Interval) Days() int64 { return iv.ticks / calendar.TicksPerDay }

// SubDayTicks returns the day-time component of iv less its whole days. It
// has the same sign as the day-time component.
func (iv *Interval) SubDayTicks() int64 { return iv.ticks % calendar.TicksPerDay }

// Precision returns the number of significant fractional-second digits.
func (iv *Interval) Precision() int { return int(iv.precision) }

// Mode returns the mode iv was created in.
func (iv *Interval) Mode() mode.Mode { return iv.mode }

// IsZero reports whether both components of iv are zero.
func (iv *Interval) IsZero() bool { return iv.months == 0 && iv.ticks == 0 }

// Class returns the class of iv. Zero intervals are ClassDayTime.
func (iv *Interval) Class() Class {
	switch {
	case iv.months != 0 && iv.ticks != 0:
		return ClassMixed
	case iv.months != 0:
		return ClassYearMonth
	default:
		return ClassDayTime
	}
}

// Qualifier returns the qualifier that formats every field of iv:
// QualifierYearToMonth, QualifierDayToSecond, or QualifierYearToSecond.
func (iv *Interval) Qualifier() Qualifier {
	switch iv.Class() {
	case ClassYearMonth:
		return QualifierYearToMonth
	case ClassMixed:
		return QualifierYearToSecond
	default:
		return QualifierDayToSecond
	}
}

// Sign returns -1 if iv is negative, +1 if it is positive, and 0 if it is
// zero. The month component decides the sign of a mixed interval.
func (iv *Interval) Sign() int {
	if iv.months != 0 {
		return cmp.Compare(iv.months, 0)
	}
	return cmp.Compare(iv.ticks, 0)
}

// YearMonth returns the month component of iv as a sign and the magnitudes
// of its years and months. It is the inverse of [NewYearMonth].
func (iv *Interval) YearMonth() (negative bool, years, months int64) {
	m := int64(abs(iv.months))
	return iv.months < 0, m / calendar.MonthsPerYear, m % calendar.MonthsPerYear
}

// DayTime returns the tick component of iv as a sign and the magnitudes of
// its fields. It is the inverse of [NewDayTime].
func (iv *Interval) DayTime() (negative bool, days int64, hours, minutes, seconds, nanoseconds int) {
	ticks := abs(iv.ticks)
	days = ticks / calendar.TicksPerDay
	h, m, s, frac := calendar.ClockFromTicks(ticks % calendar.TicksPerDay)
	return iv.ticks < 0, days, int(h), m, s, int(frac * calendar.NanosPerTick)
}

// compatible returns an error unless iv and u have the same class or either
// is zero.
func (iv *Interval) compatible(u *Interval, op string) error {
	if iv.IsZero() || u.IsZero() || iv.Class() == u.Class() {
		return nil
	}
	return fmt.Errorf("%w: cannot %v %v and %v intervals", ErrIncompatibleClass, op, iv.Class(), u.Class())
}

// newInterval range-checks months and ticks and returns the resulting
// Interval in the mode of iv.
func (iv *Interval) newInterval(months, ticks int64, precision uint8) (*Interval, error) {
	if months < -maxIntervalMonths || months > maxIntervalMonths ||
		ticks < -maxIntervalTicks || ticks > maxIntervalTicks {
		return nil, fmt.Errorf("%w: interval out of range", ErrOverflow)
	}
	return &Interval{months: int32(months), ticks: ticks, precision: precision, mode: iv.mode}, nil
}

// Add returns iv plus u. Returns an error wrapping ErrIncompatibleClass if
// iv and u are of different classes and neither is zero, or ErrOverflow if
// the result exceeds the interval bounds.
func (iv *Interval) Add(u *Interval) (*Interval, error) {
	if err := iv.compatible(u, "add"); err != nil {
		return nil, err
	}
	precision := resultPrecision(iv.precision, u.precision, iv.mode)
	return iv.newInterval(
		int64(iv.months)+int64(u.months),
		iv.ticks+calendar.RoundTicks(u.ticks, int(precision)),
		precision,
	)
}

// Sub returns iv minus u.
func (iv *Interval) Sub(u *Interval) (*Interval, error) {
	if err := iv.compatible(u, "subtract"); err != nil {
		return nil, err
	}
	return iv.Add(u.Negate())
}

// Negate returns -iv.
func (iv *Interval) Negate() *Interval {
	return &Interval{months: -iv.months, ticks: -iv.ticks, precision: iv.precision, mode: iv.mode}
}

// Abs returns iv with both components non-negative.
func (iv *Interval) Abs() *Interval {
	r := *iv
	if r.months < 0 {
		r.months = -r.months
	}
	if r.ticks < 0 {
		r.ticks = -r.ticks
	}
	return &r
}

// Scale returns iv multiplied by n. Returns an error wrapping ErrOverflow if
// the result exceeds the interval bounds.
func (iv *Interval) Scale(n int64) (*Interval, error) {
	months, ok := mulChecked(int64(iv.months), n)
	if !ok {
		return nil, fmt.Errorf("%w: %v * %d", ErrOverflow, iv, n)
	}
	ticks, ok := mulChecked(iv.ticks, n)
	if !ok {
		return nil, fmt.Errorf("%w: %v * %d", ErrOverflow, iv, n)
	}
	return iv.newInterval(months, ticks, iv.precision)
}

// Div returns iv divided by n. Each component is truncated toward zero, and
// the tick component is then truncated to the precision of iv. Returns an
// error wrapping ErrDivisionByZero if n is zero.
func (iv *Interval) Div(n int64) (*Interval, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: %v / 0", ErrDivisionByZero, iv)
	}
	return &Interval{
		months:    int32(int64(iv.months) / n),
		ticks:     calendar.TruncateTicks(iv.ticks/n, int(iv.precision)),
		precision: iv.precision,
		mode:      iv.mode,
	}, nil
}

// MulFloat returns iv multiplied by f, truncating each component toward
// zero and the tick component to the precision of iv. Returns an error
// wrapping ErrOutOfRange if f is NaN or ErrOverflow if the result is
// infinite or exceeds the interval bounds.
func (iv *Interval) MulFloat(f float64) (*Interval, error) {
	switch {
	case math.IsNaN(f):
		return nil, fmt.Errorf("%w: cannot multiply interval by NaN", ErrOutOfRange)
	case math.IsInf(f, 0):
		return nil, fmt.Errorf("%w: cannot multiply interval by %v", ErrOverflow, f)
	}
	return iv.scaleFloat(float64(iv.months)*f, float64(iv.ticks)*f)
}

// DivFloat returns iv divided by f, truncating each component toward zero
// and the tick component to the precision of iv. Returns an error wrapping
// ErrDivisionByZero if f is zero, ErrOutOfRange if f is NaN, or ErrOverflow
// if the result exceeds the interval bounds. Dividing by an infinity yields
// a zero interval.
func (iv *Interval) DivFloat(f float64) (*Interval, error) {
	switch {
	case math.IsNaN(f):
		return nil, fmt.Errorf("%w: cannot divide interval by NaN", ErrOutOfRange)
	case f == 0:
		return nil, fmt.Errorf("%w: %v / 0", ErrDivisionByZero, iv)
	}
	return iv.scaleFloat(float64(iv.months)/f, float64(iv.ticks)/f)
}

func (iv *Interval) scaleFloat(months, ticks float64) (*Interval, error) {
	if math.Abs(months) > maxIntervalMonths || math.Abs(ticks) > float64(maxIntervalTicks) {
		return nil, fmt.Errorf("%w: interval out of range", ErrOverflow)
	}
	return &Interval{
		months:    int32(months),
		ticks:     calendar.TruncateTicks(int64(ticks), int(iv.precision)),
		precision: iv.precision,
		mode:      iv.mode,
	}, nil
}

// Compare compares iv with u by months, then by ticks. If iv is shorter than
// u, it returns -1; if iv is longer, it returns +1; if they're the same, it
// returns 0.
func (iv *Interval) Compare(u *Interval) int {
	if c := cmp.Compare(iv.months, u.months); c != 0 {
		return c
	}
	return cmp.Compare(iv.ticks, u.ticks)
}

// Extract returns the value of field f. Every field has the sign of its
// component: months for year and month, ticks for the rest. Returns an error
// wrapping ErrIncompatibleClass for calendar-only fields such as dow.
func (iv *Interval) Extract(f Field) (int64, error) {
	switch f {
	case FieldYear:
		return int64(iv.months) / calendar.MonthsPerYear, nil
	case FieldMonth:
		return int64(iv.months) % calendar.MonthsPerYear, nil
	case FieldDay:
		return iv.Days(), nil
	case FieldHour, FieldMinute, FieldSecond, FieldNanosecond:
		sub := iv.SubDayTicks()
		v, err := extractClock(f, abs(sub), "interval")
		if sub < 0 {
			v = -v
		}
		return v, err
	default:
		return 0, fmt.Errorf("%w: interval has no %v field", ErrIncompatibleClass, f)
	}
}

func abs[T int32 | int64](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// yearMonthFields returns the mask fields of the month component of iv
// with the leading field lead.
func (iv *Interval) yearMonthFields(lead unit) mask.Fields {
	months := int64(abs(iv.months))
	f := mask.Fields{Negative: iv.months < 0, ShowSign: iv.mode.SignedIntervals()}
	if lead == unitYear {
		f.Year = months / calendar.MonthsPerYear
		f.Month = months % calendar.MonthsPerYear
	} else {
		f.Month = months
	}
	return f
}

// dayTimeFields returns the mask fields of the tick component of iv with
// the leading field lead, which absorbs every more significant field.
func (iv *Interval) dayTimeFields(lead unit) mask.Fields {
	ticks := abs(iv.ticks)
	f := mask.Fields{
		Negative:  iv.ticks < 0,
		ShowSign:  iv.mode.SignedIntervals(),
		Precision: int(iv.precision),
	}
	if lead == unitDay {
		f.Day = ticks / calendar.TicksPerDay
		ticks %= calendar.TicksPerDay
	}
	h, m, s, frac := calendar.ClockFromTicks(ticks)
	f.Hour, f.Minute, f.Second, f.Ticks = h, int64(m), int64(s), frac
	switch lead {
	case unitMinute:
		f.Minute += f.Hour * calendar.MinutesPerHour
		f.Hour = 0
	case unitSecond:
		f.Second += (f.Hour*calendar.MinutesPerHour + f.Minute) * calendar.SecondsPerMinute
		f.Hour, f.Minute = 0, 0
	}
	return f
}

// Format renders iv in the canonical format for q. Fields less significant
// than the trailing field of q are truncated. A year-month qualifier renders
// only the month component and a day-time qualifier only the tick
// component; YEAR TO SECOND renders both, each with its own sign. In Oracle
// mode non-negative components render with a plus sign.
func (iv *Interval) Format(q Qualifier) string {
	if !q.Valid() {
		return ""
	}
	def := qualifierDefs[q]
	switch q.Class() {
	case ClassYearMonth:
		return def.mask.Format(iv.yearMonthFields(def.lead))
	case ClassDayTime:
		return def.mask.Format(iv.dayTimeFields(def.lead))
	default:
		return qualifierDefs[QualifierYearToMonth].mask.Format(iv.yearMonthFields(unitYear)) +
			" " + qualifierDefs[QualifierDayToSecond].mask.Format(iv.dayTimeFields(unitDay))
	}
}

// FormatMask renders iv according to the format mask maskText. The mask
// fields present decide how the components are split: the most significant
// year-month and day-time fields in the mask absorb the rest, so "HH24:MI"
// renders 1 day 12 hours 30 minutes as "36:30". The sign is that of the
// components whose fields appear in the mask. Returns an error wrapping
// ErrInvalidFormat if the mask has fields of both components and their
// signs differ.
func (iv *Interval) FormatMask(maskText string) (string, error) {
	m, err := mask.Compile(maskText, mask.KindInterval)
	if err != nil {
		return "", err
	}

	hasYM := m.Has(mask.TokenYear) || m.Has(mask.TokenYear2) || m.Has(mask.TokenMonth)
	hasDT := m.Has(mask.TokenDay) || m.Has(mask.TokenHour24) || m.Has(mask.TokenMinute) ||
		m.Has(mask.TokenSecond) || m.Has(mask.TokenFraction)
	if hasYM && hasDT && iv.months != 0 && iv.ticks != 0 && (iv.months < 0) != (iv.ticks < 0) {
		return "", fmt.Errorf(
			"%w: mask %q shows year-month and day-time fields of %v, which have different signs",
			ErrInvalidFormat, maskText, iv,
		)
	}

	ymLead := unitMonth
	if m.Has(mask.TokenYear) || m.Has(mask.TokenYear2) {
		ymLead = unitYear
	}
	dtLead := unitSecond
	for _, c := range []struct {
		tok  mask.Token
		unit unit
	}{
		{mask.TokenDay, unitDay},
		{mask.TokenHour24, unitHour},
		{mask.TokenMinute, unitMinute},
	} {
		if m.Has(c.tok) {
			dtLead = c.unit
			break
		}
	}

	f := iv.dayTimeFields(dtLead)
	ym := iv.yearMonthFields(ymLead)
	f.Year, f.Month = ym.Year, ym.Month
	switch {
	case hasYM && !hasDT:
		f.Negative = ym.Negative
	case hasYM == hasDT:
		f.Negative = iv.Sign() < 0
	}
	return m.Format(f), nil
}

// String returns iv formatted with the qualifier returned by
// [Interval.Qualifier], such as "01-02" or "-03 04:05:06.5".
func (iv *Interval) String() string {
	return iv.Format(iv.Qualifier())
}

// MarshalText implements encoding.TextMarshaler.
func (iv *Interval) MarshalText() ([]byte, error) {
	return []byte(iv.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It parses the output
// of MarshalText using the mode already set on iv, which defaults to
// mode.Standard.
func (iv *Interval) UnmarshalText(text []byte) error {
	i, err := ParseInterval(string(text), detectQualifier(string(text)), iv.mode)
	if err != nil {
		return err
	}
	*iv = *i
	return nil
}

// detectQualifier returns the qualifier [Interval.String] used to format
// text.
func detectQualifier(text string) Qualifier {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, ":") {
		return QualifierYearToMonth
	}
	head := text
	if i := strings.IndexByte(text, ' '); i > 0 {
		head = text[:i]
	}
	if strings.Contains(head[1:], "-") {
		return QualifierYearToSecond
	}
	return QualifierDayToSecond
}
