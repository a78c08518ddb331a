package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theory/sqltemporal/temporal"
	"github.com/theory/sqltemporal/temporal/mode"
	"github.com/theory/sqltemporal/temporal/types"
)

// valueFlags holds the flags that describe how to parse a value argument.
type valueFlags struct {
	typ       string
	qualifier string
}

// register adds the --type and --qualifier flags to cmd. kinds lists the
// kinds of values the command accepts.
func (vf *valueFlags) register(cmd *cobra.Command, kinds string) {
	cmd.Flags().StringVarP(&vf.typ, "type", "t", "auto", "value type ("+kinds+")")
	cmd.Flags().StringVarP(&vf.qualifier, "qualifier", "q", "", `interval qualifier, such as "day to second"`)
}

// parse parses text according to the flags. The "auto" type picks a date,
// time, or timestamp from the shape of text.
func (vf *valueFlags) parse(text string, md mode.Mode) (types.Value, error) {
	return parseValue(vf.typ, vf.qualifier, text, md)
}

func parseValue(typ, qualifier, text string, md mode.Mode) (types.Value, error) {
	switch strings.ToLower(typ) {
	case "", "auto":
		lit, err := temporal.Parse(text, md)
		if err != nil {
			return nil, err
		}
		return lit.Temporal(), nil
	case "date":
		return value(types.ParseDate(text, md))
	case "time":
		return value(types.ParseTime(text, md))
	case "timestamp":
		return value(types.ParseTimestamp(text, md))
	case "interval":
		if qualifier == "" {
			return nil, fmt.Errorf("%w: --qualifier is required for intervals", errUsage)
		}
		lit, err := temporal.ParseInterval(text, qualifier, md)
		if err != nil {
			return nil, err
		}
		return lit.Temporal(), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", errUsage, typ)
	}
}

// value converts the result of a typed parse function to a types.Value,
// keeping a nil pointer out of the interface.
func value[T types.Value](val T, err error) (types.Value, error) {
	if err != nil {
		return nil, err
	}
	return val, nil
}

// exactArgs is like cobra.ExactArgs but wraps the error in errUsage.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}
