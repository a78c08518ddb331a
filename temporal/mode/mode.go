// Package mode defines the compatibility mode selector threaded through every
// construction, parse, and format call. A Mode changes the valid year range
// and the maximum fractional-second precision of temporal values, never their
// encoding.
package mode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMode wraps errors returned by the mode package.
var ErrMode = errors.New("mode")

// Mode selects standard SQL or Oracle-compatible temporal semantics.
type Mode uint8

//revive:disable:exported
const (
	Standard Mode = iota // standard
	Oracle               // oracle
)

// String returns the lowercase name of m.
func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Oracle:
		return "oracle"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Parse parses name, case-insensitively, into a Mode.
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "standard", "sql", "":
		return Standard, nil
	case "oracle":
		return Oracle, nil
	default:
		return Standard, fmt.Errorf("%w: unknown mode %q", ErrMode, name)
	}
}

// Valid reports whether m is a known Mode.
func (m Mode) Valid() bool {
	return m == Standard || m == Oracle
}

// MinYear returns the smallest year valid for dates and timestamps in m.
// Oracle mode uses astronomical year numbering, so 1 BC is year 0.
func (m Mode) MinYear() int64 {
	if m == Oracle {
		return -4712
	}
	return 1
}

// MaxYear returns the largest year valid for dates and timestamps in m.
func (m Mode) MaxYear() int64 {
	return 9999
}

// MaxPrecision returns the maximum number of significant fractional-second
// digits in m. Requests for more digits are capped to this value.
func (m Mode) MaxPrecision() int {
	if m == Oracle {
		return 7
	}
	return 6
}

// SignedIntervals reports whether m renders a plus sign on positive
// intervals.
func (m Mode) SignedIntervals() bool {
	return m == Oracle
}

// Set implements pflag.Value.
func (m *Mode) Set(name string) error {
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (*Mode) Type() string { return "mode" }

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: invalid mode %d", ErrMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}
