//nolint:godot
package temporal_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/theory/sqltemporal/temporal"
	"github.com/theory/sqltemporal/temporal/mode"
	"github.com/theory/sqltemporal/temporal/types"
)

// Parse chooses the type of a literal from its shape.
func ExampleParse() {
	for _, text := range []string{
		"2024-02-29",
		"13:45:00.25",
		"2024-02-29T13:45:00",
	} {
		lit, err := temporal.Parse(text, mode.Standard)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%v: %v\n", lit.Kind(), lit)
	}
	// Output:
	// date: 2024-02-29
	// time: 13:45:00.25
	// timestamp: 2024-02-29 13:45:00
}

// Adding a month to the last day of January clamps to the last day of
// February. Oracle mode renders the positive difference with a plus sign.
func Example_addMonths() {
	ts, err := types.ParseTimestamp("2024-01-31 12:00:00", mode.Oracle)
	if err != nil {
		log.Fatal(err)
	}
	month, err := types.ParseInterval("1", types.QualifierMonth, mode.Oracle)
	if err != nil {
		log.Fatal(err)
	}

	res, err := ts.AddInterval(month)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res)
	fmt.Println(res.Sub(ts))
	// Output:
	// 2024-02-29 12:00:00
	// +29 00:00:00
}

// Year-month and day-time intervals cannot be combined.
func Example_intervalClasses() {
	ym, _ := types.ParseInterval("1-2", types.QualifierYearToMonth, mode.Standard)
	dt, _ := types.ParseInterval("3 04:05:06", types.QualifierDayToSecond, mode.Standard)

	_, err := ym.Add(dt)
	fmt.Println(err)
	fmt.Println(errors.Is(err, types.ErrIncompatibleClass))
	// Output:
	// incompatible class: cannot add year-month and day-time intervals
	// true
}

// Masks render values in custom formats.
func Example_format() {
	lit := temporal.MustParse("2024-02-09 13:45:07.25", mode.Standard)
	for _, m := range []string{
		"DD/MM/YYYY",
		"HH12:MI:SS.FF1 AM",
		`YYYY "day" DDD`,
	} {
		out, err := lit.Format(m)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out)
	}

	iv, _ := temporal.ParseInterval("36:30", "hour to minute", mode.Standard)
	fmt.Println(iv)
	out, _ := iv.Format("HH24:MI")
	fmt.Println(out)
	// Output:
	// 09/02/2024
	// 01:45:07.2 PM
	// 2024 day 040
	// 01 12:30:00
	// 36:30
}

// Parse errors report the field and position of the failure.
func Example_parseError() {
	_, err := types.ParseDate("2023-02-29", mode.Standard)

	var perr *types.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Field, perr.Pos)
	}
	fmt.Println(errors.Is(err, types.ErrOutOfRange))
	fmt.Println(err)
	// Output:
	// day 8
	// true
	// parse: day: 29 is outside 1 to 28 at position 8 in "2023-02-29"
}
