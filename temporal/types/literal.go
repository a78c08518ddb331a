package types

import (
	"fmt"
	"math/bits"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
)

// scanner parses the canonical literal grammar:
//
//	date      = [ "+" | "-" ] year "-" month "-" day
//	time      = hour ":" minute ":" second [ "." fraction ]
//	timestamp = date ( " "+ | "T" ) time
//	interval  = [ "+" | "-" ] fields selected by the qualifier
//
// Surrounding whitespace is ignored. Failures are reported as *ParseError
// values naming the field and byte position.
type scanner struct {
	text string
	pos  int
	md   mode.Mode
}

func newScanner(text string, md mode.Mode) *scanner {
	s := &scanner{text: text, md: md}
	s.skipSpace()
	return s
}

func (s *scanner) errorf(field, format string, args ...any) error {
	return mask.NewParseError(s.text, s.pos, field, fmt.Sprintf(format, args...))
}

// rangeErrorf reports a well-formed field whose value is out of range. The
// error wraps both ErrParse and ErrOutOfRange.
func (s *scanner) rangeErrorf(pos int, field, format string, args ...any) error {
	err := mask.NewParseError(s.text, pos, field, fmt.Sprintf(format, args...))
	err.Err = ErrOutOfRange
	return err
}

func (s *scanner) peek() byte {
	if s.pos < len(s.text) {
		return s.text[s.pos]
	}
	return 0
}

// skipSpace advances past whitespace and returns the number of bytes
// skipped.
func (s *scanner) skipSpace() int {
	start := s.pos
	for s.pos < len(s.text) {
		switch s.text[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
			continue
		}
		break
	}
	return s.pos - start
}

// sign consumes an optional sign and reports whether it was a minus.
func (s *scanner) sign() bool {
	switch s.peek() {
	case '-':
		s.pos++
		return true
	case '+':
		s.pos++
	}
	return false
}

func (s *scanner) expect(c byte, field string) error {
	if s.peek() != c {
		if s.pos >= len(s.text) {
			return s.errorf(field, "expected %q but reached end of input", c)
		}
		return s.errorf(field, "expected %q but found %q", c, s.text[s.pos])
	}
	s.pos++
	return nil
}

// number scans between 1 and maxDigits decimal digits and returns the value
// and the number of digits.
func (s *scanner) number(field string, maxDigits int) (int64, int, error) {
	start := s.pos
	var v int64
	for s.pos < len(s.text) && isDigit(s.text[s.pos]) {
		if s.pos-start == maxDigits {
			return 0, 0, s.errorf(field, "too many digits")
		}
		v = v*10 + int64(s.text[s.pos]-'0')
		s.pos++
	}
	if s.pos == start {
		if s.pos >= len(s.text) {
			return 0, 0, s.errorf(field, "expected digits but reached end of input")
		}
		return 0, 0, s.errorf(field, "expected digits but found %q", s.text[s.pos])
	}
	return v, s.pos - start, nil
}

// bounded scans a number of up to maxDigits digits and checks that it lies
// between lo and hi inclusive.
func (s *scanner) bounded(field string, maxDigits int, lo, hi int64) (int64, error) {
	start := s.pos
	v, _, err := s.number(field, maxDigits)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, s.rangeErrorf(start, field, "%d is outside %d to %d", v, lo, hi)
	}
	return v, nil
}

// finish ensures nothing but whitespace remains.
func (s *scanner) finish() error {
	s.skipSpace()
	if s.pos < len(s.text) {
		return s.errorf("input", "unexpected trailing characters %q", s.text[s.pos:])
	}
	return nil
}

// date scans a date and returns its day number.
func (s *scanner) date() (int64, error) {
	start := s.pos
	neg := s.sign()
	year, _, err := s.number("year", 9)
	if err != nil {
		return 0, err
	}
	if neg {
		year = -year
	}
	if year < s.md.MinYear() || year > s.md.MaxYear() {
		return 0, s.rangeErrorf(
			start, "year", "%d is outside %d to %d", year, s.md.MinYear(), s.md.MaxYear(),
		)
	}

	if err := s.expect('-', "separator"); err != nil {
		return 0, err
	}
	month, err := s.bounded("month", 2, 1, calendar.MonthsPerYear)
	if err != nil {
		return 0, err
	}
	if err := s.expect('-', "separator"); err != nil {
		return 0, err
	}
	day, err := s.bounded("day", 2, 1, int64(calendar.DaysInMonth(year, int(month))))
	if err != nil {
		return 0, err
	}

	return calendar.DaysFromCivil(year, int(month), int(day)), nil
}

// clock scans a time of day. It returns the ticks since midnight, the
// precision of the fraction, and whether rounding the fraction carried past
// the 59th second.
func (s *scanner) clock() (int64, int, bool, error) {
	hour, err := s.bounded("hour", 2, 0, calendar.HoursPerDay-1)
	if err != nil {
		return 0, 0, false, err
	}
	if err := s.expect(':', "separator"); err != nil {
		return 0, 0, false, err
	}
	minute, err := s.bounded("minute", 2, 0, calendar.MinutesPerHour-1)
	if err != nil {
		return 0, 0, false, err
	}
	if err := s.expect(':', "separator"); err != nil {
		return 0, 0, false, err
	}
	second, err := s.bounded("second", 2, 0, calendar.SecondsPerMinute-1)
	if err != nil {
		return 0, 0, false, err
	}

	frac, precision, err := s.fraction()
	if err != nil {
		return 0, 0, false, err
	}

	carried := second == calendar.SecondsPerMinute-1 && frac == calendar.TicksPerSecond
	return calendar.TicksFromClock(int(hour), int(minute), int(second), frac), precision, carried, nil
}

// fraction scans an optional "." and up to nine fraction digits. It returns
// the fraction in ticks rounded to the precision, which is the number of
// digits capped at the maximum for the mode.
func (s *scanner) fraction() (int64, int, error) {
	if s.peek() != '.' {
		return 0, 0, nil
	}
	s.pos++
	v, digits, err := s.number("fraction", nanosDigits)
	if err != nil {
		return 0, 0, err
	}
	precision := min(digits, s.md.MaxPrecision())
	return mask.FractionTicks(v, digits, precision), precision, nil
}

// timestamp scans a date and a time separated by spaces or "T" and returns
// the ticks since the epoch and the precision.
func (s *scanner) timestamp() (int64, int, error) {
	days, err := s.date()
	if err != nil {
		return 0, 0, err
	}
	if s.peek() == 'T' {
		s.pos++
	} else if s.skipSpace() == 0 {
		return 0, 0, s.errorf("separator", "expected space or \"T\" between date and time")
	}

	fracPos := s.pos
	clock, precision, _, err := s.clock()
	if err != nil {
		return 0, 0, err
	}

	// Rounding may carry into the next day; only the final value is checked.
	ticks := days*calendar.TicksPerDay + clock
	if lo, hi := tickRange(s.md); ticks < lo || ticks > hi {
		return 0, 0, s.rangeErrorf(fracPos, "second", "rounding carries past the end of the valid range")
	}
	return ticks, precision, nil
}

// interval scans an interval literal for q and returns its months, ticks,
// and precision.
func (s *scanner) interval(q Qualifier) (int64, int64, int, error) {
	def := qualifierDefs[q]
	switch q.Class() {
	case ClassYearMonth:
		months, err := s.yearMonth(def.lead, def.trail)
		return months, 0, 0, err
	case ClassDayTime:
		ticks, precision, err := s.dayTime(def.lead, def.trail)
		return 0, ticks, precision, err
	default:
		months, err := s.yearMonth(unitYear, unitMonth)
		if err != nil {
			return 0, 0, 0, err
		}
		if s.skipSpace() == 0 {
			return 0, 0, 0, s.errorf("separator", "expected space between year-month and day-time fields")
		}
		ticks, precision, err := s.dayTime(unitDay, unitSecond)
		return months, ticks, precision, err
	}
}

// yearMonth scans a signed year-month interval from lead to trail.
func (s *scanner) yearMonth(lead, trail unit) (int64, error) {
	start := s.pos
	neg := s.sign()

	var months int64
	if lead == unitYear {
		years, err := s.bounded("year", 9, 0, maxIntervalMonths/calendar.MonthsPerYear)
		if err != nil {
			return 0, err
		}
		months = years * calendar.MonthsPerYear
		if trail == unitMonth {
			if err := s.expect('-', "separator"); err != nil {
				return 0, err
			}
			m, err := s.bounded("month", 2, 0, calendar.MonthsPerYear-1)
			if err != nil {
				return 0, err
			}
			months += m
		}
	} else {
		m, err := s.bounded("month", 10, 0, maxIntervalMonths)
		if err != nil {
			return 0, err
		}
		months = m
	}

	if s.peek() == '.' {
		return 0, s.errorf(unitNames[trail], "year-month intervals do not allow fractions")
	}
	if months > maxIntervalMonths {
		return 0, s.rangeErrorf(start, unitNames[lead], "interval exceeds %d months", maxIntervalMonths)
	}
	if neg {
		months = -months
	}
	return months, nil
}

// dayTime scans a signed day-time interval from lead to trail. The leading
// field is unbounded up to the interval range; later fields are bounded by
// their units. A fraction is allowed only after the trailing field and is
// interpreted in its unit.
func (s *scanner) dayTime(lead, trail unit) (int64, int, error) {
	start := s.pos
	neg := s.sign()

	var ticks int64
	for u := lead; u <= trail; u++ {
		field := unitNames[u]
		var v int64
		var err error
		switch {
		case u == lead:
			v, err = s.bounded(field, 12, 0, maxIntervalTicks/u.ticks())
		case u == unitHour:
			if s.skipSpace() == 0 {
				return 0, 0, s.errorf("separator", "expected space before hour")
			}
			v, err = s.bounded(field, 2, 0, calendar.HoursPerDay-1)
		default:
			if err = s.expect(':', "separator"); err == nil {
				v, err = s.bounded(field, 2, 0, calendar.MinutesPerHour-1)
			}
		}
		if err != nil {
			return 0, 0, err
		}
		ticks += v * u.ticks()
	}

	var precision int
	if s.peek() == '.' {
		s.pos++
		v, digits, err := s.number("fraction", nanosDigits)
		if err != nil {
			return 0, 0, err
		}
		var frac int64
		if trail == unitSecond {
			precision = min(digits, s.md.MaxPrecision())
			frac = mask.FractionTicks(v, digits, precision)
		} else {
			// v/10**digits of one trailing unit. The product needs up to 128
			// bits but the quotient is less than one unit.
			hi, lo := bits.Mul64(uint64(v), uint64(trail.ticks()))
			quo, _ := bits.Div64(hi, lo, uint64(calendar.Pow10(digits)))
			frac = int64(quo)
			precision = min(tickPrecision(frac), s.md.MaxPrecision())
			frac = calendar.RoundTicks(frac, precision)
		}
		ticks += frac
	}

	if ticks > maxIntervalTicks {
		return 0, 0, s.rangeErrorf(start, unitNames[lead], "interval exceeds %d days", maxIntervalDays)
	}
	if neg {
		ticks = -ticks
	}
	return ticks, precision, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
