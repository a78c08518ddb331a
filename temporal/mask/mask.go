// Package mask compiles display masks such as "YYYY-MM-DD HH24:MI:SS.FF" and
// uses them to render and parse the calendar fields of temporal values.
//
// A mask is lexed into a closed set of elements: the numeric field tokens
// (YYYY, YY, MM, DD, DDD, D, HH24, HH12, AM, MI, SS, SSSSS, FF, FF1-FF9),
// literal punctuation (- / , . ; : and space), and double-quoted text. Any
// other letter run is an error, as is a token that does not apply to the kind
// of value the mask is compiled for.
package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat errors are returned for malformed masks.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrParse errors are returned when text does not match the expected
	// grammar. They are always wrapped in a *ParseError.
	ErrParse = errors.New("parse")
)

// ParseError reports the field and byte position at which text failed to
// parse.
type ParseError struct {
	// Field names the field or element being parsed, such as "month" or "MM".
	Field string
	// Pos is the byte offset in Text where parsing failed.
	Pos int
	// Text is the complete input.
	Text string
	// Msg describes the failure.
	Msg string
	// Err optionally classifies the failure further, for example as a field
	// outside its valid range.
	Err error
}

// NewParseError creates a *ParseError.
func NewParseError(text string, pos int, field, msg string) *ParseError {
	return &ParseError{Field: field, Pos: pos, Text: text, Msg: msg}
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v: %v at position %d in %q", ErrParse, e.Field, e.Msg, e.Pos, e.Text)
}

// Unwrap returns ErrParse and, if set, Err.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// Kind identifies the type of value a mask applies to.
type Kind uint8

//revive:disable:exported
const (
	KindDate      Kind = iota // date
	KindTime                  // time
	KindTimestamp             // timestamp
	KindInterval              // interval
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindInterval:
		return "interval"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token identifies a mask element.
type Token uint8

//revive:disable:exported
const (
	TokenLiteral   Token = iota // literal
	TokenYear                   // YYYY
	TokenYear2                  // YY
	TokenMonth                  // MM
	TokenDay                    // DD
	TokenDayOfYear              // DDD
	TokenDayOfWeek              // D
	TokenHour24                 // HH24
	TokenHour12                 // HH12
	TokenMeridiem               // AM
	TokenMinute                 // MI
	TokenSecond                 // SS
	TokenSecOfDay               // SSSSS
	TokenFraction               // FF
)

// String returns the canonical mask spelling of t.
func (t Token) String() string {
	switch t {
	case TokenLiteral:
		return "literal"
	case TokenYear:
		return "YYYY"
	case TokenYear2:
		return "YY"
	case TokenMonth:
		return "MM"
	case TokenDay:
		return "DD"
	case TokenDayOfYear:
		return "DDD"
	case TokenDayOfWeek:
		return "D"
	case TokenHour24:
		return "HH24"
	case TokenHour12:
		return "HH12"
	case TokenMeridiem:
		return "AM"
	case TokenMinute:
		return "MI"
	case TokenSecond:
		return "SS"
	case TokenSecOfDay:
		return "SSSSS"
	case TokenFraction:
		return "FF"
	default:
		return fmt.Sprintf("Token(%d)", uint8(t))
	}
}

// width returns the nominal number of digits of a numeric token.
func (t Token) width() int {
	switch t {
	case TokenYear:
		return 4
	case TokenDayOfYear:
		return 3
	case TokenDayOfWeek:
		return 1
	case TokenSecOfDay:
		return 5
	case TokenFraction:
		return 9
	case TokenLiteral, TokenMeridiem:
		return 0
	default:
		return 2
	}
}

// numeric reports whether t renders as digits.
func (t Token) numeric() bool {
	return t != TokenLiteral && t != TokenMeridiem
}

// applies reports whether t may appear in a mask for values of kind k.
func (t Token) applies(k Kind) bool {
	switch t {
	case TokenLiteral:
		return true
	case TokenYear, TokenYear2, TokenMonth, TokenDay:
		return k != KindTime
	case TokenDayOfYear, TokenDayOfWeek:
		return k == KindDate || k == KindTimestamp
	case TokenHour24, TokenMinute, TokenSecond, TokenFraction:
		return k != KindDate
	case TokenHour12, TokenMeridiem, TokenSecOfDay:
		return k == KindTime || k == KindTimestamp
	default:
		return false
	}
}

// element is a single lexed mask element.
type element struct {
	tok Token
	// text holds the literal text of TokenLiteral elements.
	text string
	// digits holds the explicit digit count of FF1-FF9; zero means the
	// precision of the value.
	digits int
	// pos is the byte offset of the element in the mask.
	pos int
}

// Mask is a compiled display mask for a kind of value. Masks are immutable
// and safe for concurrent use.
type Mask struct {
	text  string
	kind  Kind
	elems []element
	has   uint32
}

// Compile lexes text into a Mask for values of kind. Returns an error
// wrapping ErrInvalidFormat if text contains an unknown element, an
// unterminated quote, or a token that does not apply to kind.
func Compile(text string, kind Kind) (*Mask, error) {
	elems, err := lex(text)
	if err != nil {
		return nil, err
	}

	m := &Mask{text: text, kind: kind, elems: elems}
	for _, e := range elems {
		if !e.tok.applies(kind) {
			return nil, fmt.Errorf(
				"%w: %v is not valid for %v values at position %d of %q",
				ErrInvalidFormat, e.tok, kind, e.pos, text,
			)
		}
		m.has |= 1 << e.tok
	}

	return m, nil
}

// MustCompile is like Compile but panics if text cannot be compiled. It is
// intended for masks known at compile time.
func MustCompile(text string, kind Kind) *Mask {
	m, err := Compile(text, kind)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the source text of m.
func (m *Mask) String() string { return m.text }

// Kind returns the kind of value m applies to.
func (m *Mask) Kind() Kind { return m.kind }

// Has reports whether m contains tok.
func (m *Mask) Has(tok Token) bool { return m.has&(1<<tok) != 0 }

// Canonical masks.
const (
	DateMask      = "YYYY-MM-DD"
	TimeMask      = "HH24:MI:SS.FF"
	TimestampMask = "YYYY-MM-DD HH24:MI:SS.FF"
)

// Default returns the canonical mask for kind. Interval masks depend on the
// interval qualifier, so KindInterval returns the mixed year-to-second mask.
// Both modes share these masks; Oracle mode differs only in rendering a plus
// sign on positive intervals, which is carried by Fields.ShowSign.
func Default(kind Kind) *Mask {
	return defaults[kind]
}

//nolint:gochecknoglobals
var defaults = [...]*Mask{
	KindDate:      MustCompile(DateMask, KindDate),
	KindTime:      MustCompile(TimeMask, KindTime),
	KindTimestamp: MustCompile(TimestampMask, KindTimestamp),
	KindInterval:  MustCompile("YY-MM DD HH24:MI:SS.FF", KindInterval),
}
