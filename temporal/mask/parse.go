package mask

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mode"
)

// maxDigits bounds the digits read for a field that is not followed directly
// by another numeric field.
const maxDigits = 18

// Parse parses text according to m and returns the fields it contains.
// Whitespace is allowed before and after every element, and a space in the
// mask matches any run of whitespace. Fraction digits beyond the maximum
// precision of md are rounded half away from zero.
//
// Parse validates syntax only; the constructors of each type validate field
// ranges. Returns an error wrapping ErrParse when text does not match the
// mask, or ErrInvalidFormat when the mask contains an element that cannot be
// parsed, such as DDD or a two-digit year for a date.
func (m *Mask) Parse(text string, md mode.Mode) (Fields, error) {
	p := &parser{mask: m, text: text, mode: md}
	return p.parse()
}

// parser holds the state of a single Mask.Parse call.
type parser struct {
	mask   *Mask
	text   string
	pos    int
	mode   mode.Mode
	fields Fields
	hour12 int64
	pm     bool
}

func (p *parser) parse() (Fields, error) {
	p.skipSpace()
	if p.mask.kind == KindInterval && p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '-':
			p.fields.Negative = true
			p.pos++
		case '+':
			p.pos++
		}
	}

	for i, e := range p.mask.elems {
		var err error
		switch e.tok {
		case TokenLiteral:
			err = p.literal(e)
		case TokenMeridiem:
			err = p.meridiem()
		default:
			width := maxDigits
			if i+1 < len(p.mask.elems) && p.mask.elems[i+1].tok.numeric() {
				width = e.tok.width()
			}
			if e.tok == TokenFraction && e.digits > 0 {
				width = e.digits
			}
			err = p.numeric(e, width)
		}
		if err != nil {
			return Fields{}, err
		}
	}

	p.skipSpace()
	if p.pos < len(p.text) {
		return Fields{}, p.errorf("input", "unexpected trailing characters")
	}

	if p.fields.Has(TokenHour12) {
		p.fields.Hour = p.hour12 % 12
		if p.pm {
			p.fields.Hour += 12
		}
	}

	return p.fields, nil
}

// errorf returns a *ParseError positioned at the current offset.
func (p *parser) errorf(field, format string, args ...any) error {
	return NewParseError(p.text, p.pos, field, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.text) {
		r, size := utf8.DecodeRuneInString(p.text[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// literal matches literal mask text. Spaces in the mask match any amount of
// whitespace, including none.
func (p *parser) literal(e element) error {
	for _, r := range e.text {
		p.skipSpace()
		if r == ' ' {
			continue
		}
		if p.pos >= len(p.text) {
			return p.errorf("separator", "expected %q but reached end of input", r)
		}
		got, size := utf8.DecodeRuneInString(p.text[p.pos:])
		if got != r {
			return p.errorf("separator", "expected %q but found %q", r, got)
		}
		p.pos += size
	}
	return nil
}

// meridiem parses AM or PM, case-insensitively.
func (p *parser) meridiem() error {
	p.skipSpace()
	if p.pos+2 > len(p.text) {
		return p.errorf("meridiem", "expected AM or PM")
	}
	switch word := p.text[p.pos : p.pos+2]; strings.ToUpper(word) {
	case "AM":
		p.pm = false
	case "PM":
		p.pm = true
	default:
		return p.errorf("meridiem", "expected AM or PM but found %q", word)
	}
	p.pos += 2
	p.fields.present |= 1 << TokenMeridiem
	return nil
}

// numeric parses the digits of a numeric element, reading at most width
// digits.
func (p *parser) numeric(e element, width int) error {
	field := e.tok.fieldName()
	switch e.tok {
	case TokenDayOfYear, TokenDayOfWeek:
		return fmt.Errorf("%w: %v cannot be used to parse %v values", ErrInvalidFormat, e.tok, p.mask.kind)
	case TokenYear2:
		if p.mask.kind != KindInterval {
			return fmt.Errorf("%w: YY cannot be used to parse %v values", ErrInvalidFormat, p.mask.kind)
		}
	}

	p.skipSpace()
	negative := false
	if e.tok == TokenYear && p.mask.kind != KindInterval && p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '-':
			negative = true
			p.pos++
		case '+':
			p.pos++
		}
	}

	start := p.pos
	var value int64
	for p.pos < len(p.text) && p.pos-start < width && isDigit(p.text[p.pos]) {
		value = value*10 + int64(p.text[p.pos]-'0')
		p.pos++
	}
	count := p.pos - start
	if count == 0 {
		return p.errorf(field, "expected digits")
	}
	if negative {
		value = -value
	}

	f := &p.fields
	switch e.tok {
	case TokenYear, TokenYear2:
		f.Year = value
	case TokenMonth:
		f.Month = value
	case TokenDay:
		f.Day = value
	case TokenHour24:
		f.Hour = value
	case TokenHour12:
		if value < 1 || value > 12 {
			p.pos = start
			return p.errorf(field, "12-hour value %d out of range", value)
		}
		p.hour12 = value
	case TokenMinute:
		f.Minute = value
	case TokenSecond:
		f.Second = value
	case TokenSecOfDay:
		if value >= calendar.TicksPerDay/calendar.TicksPerSecond {
			p.pos = start
			return p.errorf(field, "seconds past midnight %d out of range", value)
		}
		f.Hour = value / (calendar.MinutesPerHour * calendar.SecondsPerMinute)
		f.Minute = value / calendar.SecondsPerMinute % calendar.MinutesPerHour
		f.Second = value % calendar.SecondsPerMinute
		f.present |= 1<<TokenHour24 | 1<<TokenMinute | 1<<TokenSecond
	case TokenFraction:
		if count > 9 {
			p.pos = start
			return p.errorf(field, "more than 9 fraction digits")
		}
		f.Precision = min(count, p.mode.MaxPrecision())
		f.Ticks = FractionTicks(value, count, f.Precision)
	}
	f.present |= 1 << e.tok

	return nil
}

// FractionTicks converts value, a fraction of a second written with digits
// decimal digits, into ticks rounded half away from zero to precision
// digits. The result may equal calendar.TicksPerSecond when rounding
// carries.
func FractionTicks(value int64, digits, precision int) int64 {
	nanos := value * calendar.Pow10(9-digits)
	unit := calendar.Pow10(9 - precision)
	nanos = (nanos + unit/2) / unit * unit
	return nanos / calendar.NanosPerTick
}

// fieldName returns the field name used in parse errors.
func (t Token) fieldName() string {
	switch t {
	case TokenYear, TokenYear2:
		return "year"
	case TokenMonth:
		return "month"
	case TokenDay:
		return "day"
	case TokenDayOfYear:
		return "day of year"
	case TokenDayOfWeek:
		return "day of week"
	case TokenHour24, TokenHour12:
		return "hour"
	case TokenMeridiem:
		return "meridiem"
	case TokenMinute:
		return "minute"
	case TokenSecond, TokenSecOfDay:
		return "second"
	case TokenFraction:
		return "fraction"
	default:
		return "separator"
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
