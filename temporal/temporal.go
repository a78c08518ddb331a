// Package temporal provides SQL DATE, TIME, TIMESTAMP, and INTERVAL values
// with standard SQL and Oracle-compatible semantics. The value types live in
// the [types] package; this package parses untyped literals into them and
// adapts them to database/sql.
//
// Every value carries a [mode.Mode]. Standard mode supports years 1 through
// 9999 and six fractional-second digits; Oracle mode supports years -4712
// through 9999, seven fractional-second digits, and renders positive
// intervals with a leading plus sign.
package temporal

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theory/sqltemporal/temporal/mask"
	"github.com/theory/sqltemporal/temporal/mode"
	"github.com/theory/sqltemporal/temporal/types"
)

var (
	// ErrLiteral wraps literal parsing errors.
	ErrLiteral = errors.New("literal")

	// ErrScan wraps scanning errors.
	ErrScan = errors.New("scan")
)

// Literal holds a date, time, timestamp, or interval value.
type Literal struct {
	val types.Value
	md  mode.Mode
}

// Parse parses text as a date, time, or timestamp literal in the canonical
// format, choosing the type from the shape of text: a colon and a date
// separator make a timestamp, a colon alone a time, and anything else a
// date. Returns an error wrapping ErrLiteral and the underlying
// *types.ParseError on failure.
func Parse(text string, md mode.Mode) (*Literal, error) {
	val, err := parse(text, md)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLiteral, err)
	}
	return &Literal{val: val, md: md}, nil
}

// MustParse is like Parse but panics on parse failure.
func MustParse(text string, md mode.Mode) *Literal {
	lit, err := Parse(text, md)
	if err != nil {
		panic(err)
	}
	return lit
}

// ParseInterval parses text as an interval literal with the fields named by
// qualifier, such as "DAY TO SECOND".
func ParseInterval(text, qualifier string, md mode.Mode) (*Literal, error) {
	q, err := types.ParseQualifier(qualifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLiteral, err)
	}
	iv, err := types.ParseInterval(text, q, md)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLiteral, err)
	}
	return &Literal{val: iv, md: md}, nil
}

// New creates a Literal for val.
func New(val types.Value) *Literal {
	return &Literal{val: val, md: val.Mode()}
}

func parse(text string, md mode.Mode) (types.Value, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case !strings.ContainsRune(trimmed, ':'):
		return types.ParseDate(text, md)
	case len(trimmed) > 1 && strings.ContainsRune(trimmed[1:], '-'):
		return types.ParseTimestamp(text, md)
	default:
		return types.ParseTime(text, md)
	}
}

// Temporal returns the value held by lit.
func (lit *Literal) Temporal() types.Value { return lit.val }

// Mode returns the mode of lit.
func (lit *Literal) Mode() mode.Mode { return lit.md }

// Kind returns the kind of value held by lit.
func (lit *Literal) Kind() mask.Kind {
	switch lit.val.(type) {
	case *types.Date:
		return mask.KindDate
	case *types.Time:
		return mask.KindTime
	case *types.Timestamp:
		return mask.KindTimestamp
	default:
		return mask.KindInterval
	}
}

// String returns the canonical representation of lit.
func (lit *Literal) String() string {
	if lit.val == nil {
		return ""
	}
	return lit.val.String()
}

// Extract returns the value of field f.
func (lit *Literal) Extract(f types.Field) (int64, error) {
	if lit.val == nil {
		return 0, fmt.Errorf("%w: empty literal has no %v field", ErrLiteral, f)
	}
	//nolint:wrapcheck // Okay to return unwrapped error
	return lit.val.Extract(f)
}

// Format renders lit according to the format mask maskText.
func (lit *Literal) Format(maskText string) (string, error) {
	if lit.val == nil {
		return "", fmt.Errorf("%w: %w: empty literal", ErrLiteral, mask.ErrInvalidFormat)
	}
	switch val := lit.val.(type) {
	case *types.Interval:
		//nolint:wrapcheck // Okay to return unwrapped error
		return val.FormatMask(maskText)
	case interface{ Format(string) (string, error) }:
		//nolint:wrapcheck // Okay to return unwrapped error
		return val.Format(maskText)
	default:
		return "", fmt.Errorf("%w: cannot format %T", mask.ErrInvalidFormat, val)
	}
}

// Scan implements sql.Scanner so Literals can be read from databases
// transparently. Strings and byte slices are parsed in the mode already set
// on lit, as intervals if lit already holds one. time.Time values become
// timestamps at the maximum precision of the mode.
func (lit *Literal) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		// An empty string from a table is a null Literal.
		if src == "" {
			return nil
		}
		return lit.decode(src)
	case []byte:
		if len(src) == 0 {
			return nil
		}
		return lit.Scan(string(src))
	case time.Time:
		ts, err := types.TimestampFromTime(src, lit.md.MaxPrecision(), lit.md)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScan, err)
		}
		lit.val = ts
	default:
		return fmt.Errorf("%w: unable to scan type %T into Literal", ErrScan, src)
	}

	return nil
}

// Value implements driver.Valuer so that Literals can be written to
// databases transparently. Literals map to their canonical strings.
func (lit Literal) Value() (driver.Value, error) {
	if lit.val == nil {
		return nil, nil
	}
	return lit.val.String(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (lit Literal) MarshalText() ([]byte, error) {
	return lit.MarshalBinary()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lit *Literal) UnmarshalText(data []byte) error {
	return lit.UnmarshalBinary(data)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (lit Literal) MarshalBinary() ([]byte, error) {
	return []byte(lit.String()), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It parses data in
// the mode already set on lit.
func (lit *Literal) UnmarshalBinary(data []byte) error {
	return lit.decode(string(data))
}

// decode parses text into lit. An interval literal stays an interval; any
// other literal is parsed with [Parse].
func (lit *Literal) decode(text string) error {
	if cur, ok := lit.val.(*types.Interval); ok {
		iv := *cur
		if err := iv.UnmarshalText([]byte(text)); err != nil {
			return fmt.Errorf("%w: %w", ErrScan, err)
		}
		lit.val = &iv
		return nil
	}

	val, err := parse(text, lit.md)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScan, err)
	}
	lit.val = val
	return nil
}
