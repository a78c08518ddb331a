package mask

import (
	"strconv"

	"github.com/theory/sqltemporal/temporal/calendar"
)

// Fields holds the calendar and clock fields of a value for formatting, or
// the fields parsed from text. For dates and timestamps Year is signed. For
// intervals every field is a magnitude and Negative carries the sign; the
// leading field of an interval may exceed its usual range, such as 36 hours
// for HOUR TO MINUTE.
type Fields struct {
	// Negative marks a negative interval.
	Negative bool
	// ShowSign renders a plus sign on non-negative intervals.
	ShowSign bool

	Year   int64
	Month  int64
	Day    int64
	Hour   int64
	Minute int64
	Second int64
	// Ticks holds the fraction of a second in 100ns ticks. Parsing may
	// return calendar.TicksPerSecond when rounding carries into the next
	// second.
	Ticks int64
	// Precision is the number of significant fraction digits.
	Precision int

	// DayOfWeek (Sunday = 0) and DayOfYear are used only for formatting.
	DayOfWeek int
	DayOfYear int

	present uint32
}

// Has reports whether parsing set the field for tok.
func (f Fields) Has(tok Token) bool { return f.present&(1<<tok) != 0 }

// Format renders f according to m. It never fails.
func (m *Mask) Format(f Fields) string {
	buf := make([]byte, 0, len(m.text)+8)
	if m.kind == KindInterval {
		switch {
		case f.Negative:
			buf = append(buf, '-')
		case f.ShowSign:
			buf = append(buf, '+')
		}
	}

	for i, e := range m.elems {
		switch e.tok {
		case TokenLiteral:
			buf = append(buf, e.text...)
		case TokenYear:
			buf = m.appendYear(buf, f.Year, 4)
		case TokenYear2:
			if m.kind == KindInterval {
				buf = appendPadded(buf, f.Year, 2)
			} else {
				buf = appendPadded(buf, abs(f.Year)%100, 2)
			}
		case TokenMonth:
			buf = appendPadded(buf, f.Month, 2)
		case TokenDay:
			buf = appendPadded(buf, f.Day, 2)
		case TokenDayOfYear:
			buf = appendPadded(buf, int64(f.DayOfYear), 3)
		case TokenDayOfWeek:
			buf = strconv.AppendInt(buf, int64(f.DayOfWeek+1), 10)
		case TokenHour24:
			buf = appendPadded(buf, f.Hour, 2)
		case TokenHour12:
			h := f.Hour % 12
			if h == 0 {
				h = 12
			}
			buf = appendPadded(buf, h, 2)
		case TokenMeridiem:
			if f.Hour%calendar.HoursPerDay < 12 {
				buf = append(buf, "AM"...)
			} else {
				buf = append(buf, "PM"...)
			}
		case TokenMinute:
			buf = appendPadded(buf, f.Minute, 2)
		case TokenSecond:
			buf = appendPadded(buf, f.Second, 2)
		case TokenSecOfDay:
			buf = appendPadded(buf, (f.Hour*calendar.MinutesPerHour+f.Minute)*calendar.SecondsPerMinute+f.Second, 5)
		case TokenFraction:
			digits := e.digits
			if digits == 0 {
				digits = f.Precision
			}
			if digits == 0 {
				// No fraction: drop the separator that introduced it.
				if i > 0 && m.elems[i-1].tok == TokenLiteral && len(buf) > 0 && buf[len(buf)-1] == '.' {
					buf = buf[:len(buf)-1]
				}
				continue
			}
			buf = appendFraction(buf, f.Ticks, digits)
		}
	}

	return string(buf)
}

// appendYear appends year padded to width. Dates before year 1 are signed;
// interval years are magnitudes.
func (m *Mask) appendYear(buf []byte, year int64, width int) []byte {
	if year < 0 && m.kind != KindInterval {
		buf = append(buf, '-')
		year = -year
	}
	return appendPadded(buf, year, width)
}

// appendPadded appends the non-negative value v zero-padded to width.
func appendPadded(buf []byte, v int64, width int) []byte {
	var digits [20]byte
	s := strconv.AppendInt(digits[:0], v, 10)
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}

// appendFraction appends ticks as exactly digits fraction digits, truncating
// or zero-extending as needed.
func appendFraction(buf []byte, ticks int64, digits int) []byte {
	if digits <= calendar.FractionDigits {
		return appendPadded(buf, ticks/calendar.Pow10(calendar.FractionDigits-digits), digits)
	}
	return appendPadded(buf, ticks*calendar.Pow10(digits-calendar.FractionDigits), digits)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
