// Command sqltemporal parses, formats, and computes SQL date/time values.
package main

import (
	"os"

	"github.com/theory/sqltemporal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
