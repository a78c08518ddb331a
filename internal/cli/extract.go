package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theory/sqltemporal/temporal/types"
	"go.uber.org/zap"
)

// NewExtractCommand creates the extract command, which prints fields of a
// value.
func NewExtractCommand(opts *RootOptions) *cobra.Command {
	var vf valueFlags

	cmd := &cobra.Command{
		Use:   "extract [flags] TEXT FIELD...",
		Short: "Extract fields from a value",
		Example: `  sqltemporal extract 2024-02-29 year doy dow
  sqltemporal extract -t interval -q "day to second" -- "-1 02:03:04" day hour`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make([]types.Field, 0, len(args)-1)
			for _, name := range args[1:] {
				f, err := types.ParseField(name)
				if err != nil {
					return fmt.Errorf("%w: %w", errUsage, err)
				}
				fields = append(fields, f)
			}

			val, err := vf.parse(args[0], opts.Mode)
			if err != nil {
				return err
			}

			r := newReport(val, false)
			for _, f := range fields {
				n, err := val.Extract(f)
				if err != nil {
					return err
				}
				opts.logger.Debug("extracted",
					zap.Stringer("value", val),
					zap.Stringer("field", f),
					zap.Int64("result", n),
				)
				r.Fields = append(r.Fields, fieldValue{Name: f.String(), Value: n})
			}
			return r.write(cmd.OutOrStdout(), opts.Output)
		},
	}
	vf.register(cmd, "auto|date|time|timestamp|interval")

	return cmd
}
