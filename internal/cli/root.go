// Package cli implements the sqltemporal command line interface.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theory/sqltemporal/temporal/mode"
	"go.uber.org/zap"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution
	ExitFailure = 1 // Invalid value or failed operation
	ExitUsage   = 2 // Bad flags or arguments
)

// errUsage wraps errors caused by invalid flags or arguments.
var errUsage = errors.New("usage")

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{"text", "json", "yaml"}

// RootOptions holds global flags and the environment shared by all
// commands.
type RootOptions struct {
	Mode    mode.Mode
	Output  string
	Verbose bool
	Config  string

	fs     afero.Fs
	clock  clockwork.Clock
	config *viper.Viper
	logger *zap.Logger
}

// NewRootCommand creates the root command. Configuration files are read from
// fs and the now command reads the time from clock.
func NewRootCommand(fs afero.Fs, clock clockwork.Clock) *cobra.Command {
	opts := &RootOptions{
		Output: "text",
		fs:     fs,
		clock:  clock,
		logger: zap.NewNop(),
	}

	cmd := &cobra.Command{
		Use:   "sqltemporal",
		Short: "Parse, format, and compute SQL date/time values",
		Long: "sqltemporal parses, formats, and computes SQL DATE, TIME, TIMESTAMP, and\n" +
			"INTERVAL values with standard SQL or Oracle-compatible semantics.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			opts.logger.Debug("configured",
				zap.Stringer("mode", opts.Mode),
				zap.String("output", opts.Output),
				zap.String("config", opts.config.ConfigFileUsed()),
			)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.Var(&opts.Mode, "mode", "semantics to apply (standard|oracle)")
	flags.StringVar(&opts.Config, "config", "", "configuration file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewExtractCommand(opts))
	cmd.AddCommand(NewNowCommand(opts))

	return cmd
}

// Execute runs the command line with the real file system and clock and
// returns the process exit code.
func Execute() int {
	cmd := NewRootCommand(afero.NewOsFs(), clockwork.NewRealClock())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// GetExitCode returns the exit code for err.
func GetExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// isValidOutput checks if the output is one of the allowed formats.
func isValidOutput(output string) bool {
	return slices.Contains(ValidOutputs, output)
}
