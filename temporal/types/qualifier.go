package types

import (
	"fmt"
	"strings"

	"github.com/theory/sqltemporal/temporal/calendar"
	"github.com/theory/sqltemporal/temporal/mask"
)

// Class identifies the components an interval carries.
type Class uint8

//revive:disable:exported
const (
	ClassDayTime   Class = iota // day-time
	ClassYearMonth              // year-month
	ClassMixed                  // mixed
)

//revive:enable:exported

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case ClassDayTime:
		return "day-time"
	case ClassYearMonth:
		return "year-month"
	case ClassMixed:
		return "mixed"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// unit is an interval field, ordered from most to least significant.
type unit uint8

const (
	unitYear unit = iota
	unitMonth
	unitDay
	unitHour
	unitMinute
	unitSecond
)

//nolint:gochecknoglobals
var unitNames = [...]string{
	unitYear:   "year",
	unitMonth:  "month",
	unitDay:    "day",
	unitHour:   "hour",
	unitMinute: "minute",
	unitSecond: "second",
}

// ticks returns the number of ticks in one u. Year and month have no fixed
// tick length and return zero.
func (u unit) ticks() int64 {
	switch u {
	case unitDay:
		return calendar.TicksPerDay
	case unitHour:
		return calendar.TicksPerHour
	case unitMinute:
		return calendar.TicksPerMinute
	case unitSecond:
		return calendar.TicksPerSecond
	default:
		return 0
	}
}

// Qualifier selects the fields of an interval literal, such as DAY TO SECOND.
// The set of qualifiers is closed.
type Qualifier uint8

//revive:disable:exported
const (
	QualifierYear           Qualifier = iota // YEAR
	QualifierYearToMonth                     // YEAR TO MONTH
	QualifierMonth                           // MONTH
	QualifierDay                             // DAY
	QualifierDayToHour                       // DAY TO HOUR
	QualifierDayToMinute                     // DAY TO MINUTE
	QualifierDayToSecond                     // DAY TO SECOND
	QualifierHour                            // HOUR
	QualifierHourToMinute                    // HOUR TO MINUTE
	QualifierHourToSecond                    // HOUR TO SECOND
	QualifierMinute                          // MINUTE
	QualifierMinuteToSecond                  // MINUTE TO SECOND
	QualifierSecond                          // SECOND
	QualifierYearToSecond                    // YEAR TO SECOND
)

//revive:enable:exported

// qualifierDef describes the leading and trailing fields of a qualifier and
// the mask used to format it. The mixed qualifier formats each class with
// its own mask.
type qualifierDef struct {
	lead  unit
	trail unit
	mask  *mask.Mask
}

//nolint:gochecknoglobals
var qualifierDefs = [...]qualifierDef{
	QualifierYear:           {unitYear, unitYear, intervalMask("YY")},
	QualifierYearToMonth:    {unitYear, unitMonth, intervalMask("YY-MM")},
	QualifierMonth:          {unitMonth, unitMonth, intervalMask("MM")},
	QualifierDay:            {unitDay, unitDay, intervalMask("DD")},
	QualifierDayToHour:      {unitDay, unitHour, intervalMask("DD HH24")},
	QualifierDayToMinute:    {unitDay, unitMinute, intervalMask("DD HH24:MI")},
	QualifierDayToSecond:    {unitDay, unitSecond, intervalMask("DD HH24:MI:SS.FF")},
	QualifierHour:           {unitHour, unitHour, intervalMask("HH24")},
	QualifierHourToMinute:   {unitHour, unitMinute, intervalMask("HH24:MI")},
	QualifierHourToSecond:   {unitHour, unitSecond, intervalMask("HH24:MI:SS.FF")},
	QualifierMinute:         {unitMinute, unitMinute, intervalMask("MI")},
	QualifierMinuteToSecond: {unitMinute, unitSecond, intervalMask("MI:SS.FF")},
	QualifierSecond:         {unitSecond, unitSecond, intervalMask("SS.FF")},
	QualifierYearToSecond:   {unitYear, unitSecond, nil},
}

func intervalMask(text string) *mask.Mask {
	return mask.MustCompile(text, mask.KindInterval)
}

// Valid reports whether q is a known qualifier.
func (q Qualifier) Valid() bool { return int(q) < len(qualifierDefs) }

// String returns the SQL spelling of q, such as "DAY TO SECOND".
func (q Qualifier) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Qualifier(%d)", uint8(q))
	}
	def := qualifierDefs[q]
	if def.lead == def.trail {
		return strings.ToUpper(unitNames[def.lead])
	}
	return strings.ToUpper(unitNames[def.lead] + " to " + unitNames[def.trail])
}

// Class returns the class of interval q describes.
func (q Qualifier) Class() Class {
	def := qualifierDefs[q]
	switch {
	case def.trail <= unitMonth:
		return ClassYearMonth
	case def.lead >= unitDay:
		return ClassDayTime
	default:
		return ClassMixed
	}
}

// Mask returns the canonical format mask for q. The mixed YEAR TO SECOND
// qualifier returns its year-month and day-time masks joined by a space.
func (q Qualifier) Mask() string {
	if q == QualifierYearToSecond {
		return qualifierDefs[QualifierYearToMonth].mask.String() + " " +
			qualifierDefs[QualifierDayToSecond].mask.String()
	}
	return qualifierDefs[q].mask.String()
}

// MarshalText implements encoding.TextMarshaler.
func (q Qualifier) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfRange, q)
	}
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Qualifier) UnmarshalText(text []byte) error {
	p, err := ParseQualifier(string(text))
	if err != nil {
		return err
	}
	*q = p
	return nil
}

// ParseQualifier parses text such as "DAY TO SECOND" or "year_to_month" into
// a Qualifier. Words are matched case-insensitively and may be separated by
// spaces or underscores. Unknown units and qualifiers whose leading field is
// less significant than the trailing field fail with a *ParseError.
func ParseQualifier(text string) (Qualifier, error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '_' || r == '\t'
	})

	var lead, trail unit
	var err error
	switch {
	case len(words) == 1:
		if lead, err = parseUnit(text, words[0]); err != nil {
			return 0, err
		}
		trail = lead
	case len(words) == 3 && strings.EqualFold(words[1], "to"):
		if lead, err = parseUnit(text, words[0]); err != nil {
			return 0, err
		}
		if trail, err = parseUnit(text, words[2]); err != nil {
			return 0, err
		}
	default:
		return 0, mask.NewParseError(text, 0, "qualifier", "expected UNIT or UNIT TO UNIT")
	}

	for i, def := range qualifierDefs {
		if def.lead == lead && def.trail == trail {
			return Qualifier(i), nil
		}
	}

	return 0, mask.NewParseError(
		text, strings.Index(strings.ToLower(text), unitNames[trail]), "qualifier",
		fmt.Sprintf("%v TO %v is not a valid interval qualifier",
			strings.ToUpper(unitNames[lead]), strings.ToUpper(unitNames[trail]),
		),
	)
}

func parseUnit(text, word string) (unit, error) {
	key := strings.ToLower(word)
	// Accept plurals such as "YEARS" and "DAYS".
	if len(key) > 1 && key[len(key)-1] == 's' {
		key = key[:len(key)-1]
	}
	for i, name := range unitNames {
		if name == key {
			return unit(i), nil
		}
	}
	return 0, mask.NewParseError(
		text, strings.Index(text, word), "qualifier",
		fmt.Sprintf("unknown interval unit %q", word),
	)
}
