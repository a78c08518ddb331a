package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theory/sqltemporal/temporal"
	"go.uber.org/zap"
)

// NewFormatCommand creates the format command, which renders a value with a
// format mask.
func NewFormatCommand(opts *RootOptions) *cobra.Command {
	var (
		vf       valueFlags
		maskText string
	)

	cmd := &cobra.Command{
		Use:   "format [flags] --mask MASK TEXT",
		Short: "Render a value with a format mask",
		Example: `  sqltemporal format --mask "DD/MM/YYYY" 2024-02-29
  sqltemporal format -t interval -q "hour to minute" --mask HH24:MI 36:30`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maskText == "" {
				return fmt.Errorf("%w: --mask is required", errUsage)
			}
			val, err := vf.parse(args[0], opts.Mode)
			if err != nil {
				return err
			}
			out, err := temporal.New(val).Format(maskText)
			if err != nil {
				return err
			}
			opts.logger.Debug("formatted",
				zap.Stringer("value", val),
				zap.String("mask", maskText),
				zap.String("result", out),
			)

			r := newReport(val, false)
			r.Value = out
			return r.write(cmd.OutOrStdout(), opts.Output)
		},
	}
	vf.register(cmd, "auto|date|time|timestamp|interval")
	cmd.Flags().StringVarP(&maskText, "mask", "m", "", "format mask, such as YYYY-MM-DD")

	return cmd
}
