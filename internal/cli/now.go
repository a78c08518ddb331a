package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theory/sqltemporal/temporal/types"
	"go.uber.org/zap"
)

// NewNowCommand creates the now command, which prints the current UTC date,
// time, or timestamp.
func NewNowCommand(opts *RootOptions) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "now [flags]",
		Short: "Print the current date, time, or timestamp",
		Example: `  sqltemporal now
  sqltemporal now --type date
  sqltemporal now --mode oracle --precision 7`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Precision may come from the environment or configuration file;
			// a negative value selects the maximum for the mode.
			precision := opts.config.GetInt("precision")
			if precision < 0 {
				precision = opts.Mode.MaxPrecision()
			}

			var (
				val types.Value
				err error
			)
			switch strings.ToLower(typ) {
			case "timestamp":
				val, err = value(types.Now(opts.clock, precision, opts.Mode))
			case "date":
				val, err = value(types.CurrentDate(opts.clock, opts.Mode))
			case "time":
				val, err = value(types.CurrentTime(opts.clock, precision, opts.Mode))
			default:
				return fmt.Errorf("%w: unknown type %q", errUsage, typ)
			}
			if err != nil {
				return err
			}

			opts.logger.Debug("now",
				zap.String("type", typ),
				zap.Int("precision", precision),
				zap.Stringer("value", val),
			)
			return newReport(val, false).write(cmd.OutOrStdout(), opts.Output)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "timestamp", "value type (date|time|timestamp)")
	cmd.Flags().IntP("precision", "p", -1, "fractional second digits")

	return cmd
}
