// Package types provides SQL date, time, timestamp, and interval values.
//
// Every value carries the [mode.Mode] it was created in. The mode decides the
// valid range of years, the maximum fractional-second precision, and whether
// positive intervals render with a leading plus sign. Arithmetic uses the
// mode of the receiver.
//
// Times of day and timestamps count 100ns ticks, so they support up to seven
// fractional-second digits. Standard mode caps precision at six digits and
// Oracle mode at seven. Requests for more precision than the mode supports are
// silently capped; negative precisions fail with [ErrOutOfRange].
package types

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
)

var (
	// ErrOutOfRange errors are returned when a constructor argument or a
	// parsed field falls outside its valid range.
	ErrOutOfRange = errors.New("out of range")

	// ErrOverflow errors are returned when the result of arithmetic falls
	// outside the valid range for its type.
	ErrOverflow = errors.New("overflow")

	// ErrIncompatibleClass errors are returned when combining year-month and
	// day-time intervals, or when extracting a field a value does not have.
	ErrIncompatibleClass = errors.New("incompatible class")

	// ErrDivisionByZero errors are returned when dividing an interval by
	// zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrParse errors are returned when text does not match the expected
	// grammar. They are always wrapped in a *ParseError.
	ErrParse = mask.ErrParse

	// ErrInvalidFormat errors are returned for malformed format masks.
	ErrInvalidFormat = mask.ErrInvalidFormat
)

// ParseError reports the field and byte position at which text failed to
// parse.
type ParseError = mask.ParseError

// Value defines the interface shared by all temporal values.
type Value interface {
	// String returns the canonical literal representation of the value.
	String() string

	// Mode returns the mode the value was created in.
	Mode() mode.Mode

	// Extract returns the value of field f.
	Extract(f Field) (int64, error)
}

// Field identifies a field that can be extracted from a value.
type Field uint8

//revive:disable:exported
const (
	FieldYear         Field = iota // year
	FieldMonth                     // month
	FieldDay                       // day
	FieldHour                      // hour
	FieldMinute                    // minute
	FieldSecond                    // second
	FieldNanosecond                // nanosecond
	FieldDayOfWeek                 // dow
	FieldISODayOfWeek              // isodow
	FieldDayOfYear                 // doy
	FieldQuarter                   // quarter
)

//revive:enable:exported

//nolint:gochecknoglobals
var fieldNames = [...]string{
	FieldYear:         "year",
	FieldMonth:        "month",
	FieldDay:          "day",
	FieldHour:         "hour",
	FieldMinute:       "minute",
	FieldSecond:       "second",
	FieldNanosecond:   "nanosecond",
	FieldDayOfWeek:    "dow",
	FieldISODayOfWeek: "isodow",
	FieldDayOfYear:    "doy",
	FieldQuarter:      "quarter",
}

// String returns the name of the field.
func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", f)
}

// ParseField returns the Field named by name, ignoring case. It accepts the
// names returned by [Field.String] as well as "day_of_week" and
// "day_of_year".
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "day_of_week":
		return FieldDayOfWeek, nil
	case "day_of_year":
		return FieldDayOfYear, nil
	}
	for i, n := range fieldNames {
		if n == key {
			return Field(i), nil
		}
	}
	return 0, mask.NewParseError(name, 0, "field", "unknown field")
}

// checkMode returns an error if md is not a known mode.
func checkMode(md mode.Mode) error {
	if !md.Valid() {
		return fmt.Errorf("%w: %v", mode.ErrMode, md)
	}
	return nil
}

// resolvePrecision validates precision and caps it at the maximum precision
// supported by md.
func resolvePrecision(precision int, md mode.Mode) (int, error) {
	if err := checkMode(md); err != nil {
		return 0, err
	}
	if precision < 0 {
		return 0, fmt.Errorf("%w: precision %d is negative", ErrOutOfRange, precision)
	}
	return min(precision, md.MaxPrecision()), nil
}

// resultPrecision returns the precision of the result of combining values of
// precision a and b in mode md.
func resultPrecision(a, b uint8, md mode.Mode) uint8 {
	return uint8(min(int(max(a, b)), md.MaxPrecision()))
}

// tickPrecision returns the smallest precision that represents the fraction
// of a second in ticks without loss.
func tickPrecision(ticks int64) int {
	frac := ticks % calendar.TicksPerSecond
	for p := range calendar.FractionDigits {
		if frac%calendar.PrecisionUnit(p) == 0 {
			return p
		}
	}
	return calendar.FractionDigits
}

// dayRange returns the first and last day numbers valid in md.
func dayRange(md mode.Mode) (int64, int64) {
	return calendar.DaysFromCivil(md.MinYear(), 1, 1),
		calendar.DaysFromCivil(md.MaxYear(), 12, 31)
}

// nanosToTicks validates nanos and converts it to ticks rounded to precision.
// The result may equal calendar.TicksPerSecond if rounding carries into the
// next second.
func nanosToTicks(nanos, precision int) (int64, error) {
	if nanos < 0 || nanos >= nanosPerSecond {
		return 0, fmt.Errorf("%w: nanosecond %d", ErrOutOfRange, nanos)
	}
	return mask.FractionTicks(int64(nanos), nanosDigits, precision), nil
}

const (
	nanosPerSecond = 1_000_000_000
	nanosDigits    = 9
)

// mulChecked returns a*b and false if the product overflows int64.
func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}

// formatMask compiles maskText for kind and renders f with it.
func formatMask(maskText string, kind mask.Kind, f mask.Fields) (string, error) {
	m, err := mask.Compile(maskText, kind)
	if err != nil {
		return "", err
	}
	return m.Format(f), nil
}
