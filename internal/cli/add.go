package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theory/sqltemporal/temporal"
	"github.com/theory/sqltemporal/temporal/types"
	"go.uber.org/zap"
)

// NewAddCommand creates the add command, which adds an interval to a date,
// time, timestamp, or interval.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	var (
		vf       valueFlags
		subtract bool
	)

	cmd := &cobra.Command{
		Use:   "add [flags] --qualifier QUALIFIER TEXT INTERVAL",
		Short: "Add an interval to a value",
		Example: `  sqltemporal add -q month 2024-01-31 1
  sqltemporal add --subtract -q "day to second" "2024-03-01 00:00:00" "1 00:00:01"
  sqltemporal --mode oracle add -q year -- -0044-03-15 -1`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vf.qualifier == "" {
				return fmt.Errorf("%w: --qualifier is required", errUsage)
			}
			val, err := vf.parse(args[0], opts.Mode)
			if err != nil {
				return err
			}
			lit, err := temporal.ParseInterval(args[1], vf.qualifier, opts.Mode)
			if err != nil {
				return err
			}
			iv, _ := lit.Temporal().(*types.Interval)
			if subtract {
				iv = iv.Negate()
			}

			res, err := addInterval(val, iv)
			if err != nil {
				return err
			}
			opts.logger.Debug("added",
				zap.Stringer("value", val),
				zap.Stringer("interval", iv),
				zap.Stringer("result", res),
			)
			return newReport(res, false).write(cmd.OutOrStdout(), opts.Output)
		},
	}
	vf.register(cmd, "auto|date|time|timestamp|interval")
	cmd.Flags().BoolVarP(&subtract, "subtract", "s", false, "subtract the interval instead")

	return cmd
}

// addInterval adds iv to val.
func addInterval(val types.Value, iv *types.Interval) (types.Value, error) {
	switch val := val.(type) {
	case *types.Date:
		return value(val.AddInterval(iv))
	case *types.Time:
		return value(val.AddInterval(iv))
	case *types.Timestamp:
		return value(val.AddInterval(iv))
	case *types.Interval:
		return value(val.Add(iv))
	default:
		return nil, fmt.Errorf("%w: cannot add an interval to %T", errUsage, val)
	}
}
