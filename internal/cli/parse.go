package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewParseCommand creates the parse command, which prints the canonical form
// and integer encoding of a value.
func NewParseCommand(opts *RootOptions) *cobra.Command {
	var vf valueFlags

	cmd := &cobra.Command{
		Use:   "parse [flags] TEXT",
		Short: "Parse a value and print its canonical form and encoding",
		Example: `  sqltemporal parse "2024-02-29 13:45:00"
  sqltemporal parse --type interval --qualifier "day to second" "1 02:03:04.5"`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := vf.parse(args[0], opts.Mode)
			if err != nil {
				return err
			}
			opts.logger.Debug("parsed",
				zap.String("text", args[0]),
				zap.String("type", vf.typ),
				zap.Stringer("value", val),
			)
			return newReport(val, true).write(cmd.OutOrStdout(), opts.Output)
		},
	}
	vf.register(cmd, "auto|date|time|timestamp|interval")

	return cmd
}
