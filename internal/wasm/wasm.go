// Package main parses and formats a timestamp in order to test WASM compilation.
package main

import (
	"fmt"

	"github.com/theory/sqltemporal/temporal"
	"github.com/theory/sqltemporal/temporal/mode"
)

func main() {
	// Parse a timestamp literal.
	lit, _ := temporal.Parse("2024-02-29 13:45:00", mode.Oracle)

	// Render it with a format mask.
	out, _ := lit.Format("DD/MM/YYYY HH24:MI")

	//nolint:forbidigo
	fmt.Println(out)
}
