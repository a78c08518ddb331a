package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theory/sqltemporal/temporal/mode"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// configName is the base name of configuration files, searched for with
	// the yaml, json, and toml extensions.
	configName = "sqltemporal"

	// envPrefix prefixes environment variables that set configuration keys,
	// such as SQLTEMPORAL_MODE.
	envPrefix = "SQLTEMPORAL"
)

// configPaths lists the directories searched for a configuration file when
// --config is not set.
var configPaths = []string{".", "/etc/sqltemporal"}

// load layers configuration from the flags of cmd, the environment, a
// configuration file, and defaults, in that order of precedence, then
// stores the results in opts.
func (opts *RootOptions) load(cmd *cobra.Command) error {
	v := viper.New()
	v.SetFs(opts.fs)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("mode", mode.Standard.String())
	v.SetDefault("output", "text")

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if opts.Config != "" {
		v.SetConfigFile(opts.Config)
	} else {
		v.SetConfigName(configName)
		for _, dir := range configPaths {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.Config != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("%w: config: %w", errUsage, err)
		}
	}

	md, err := mode.Parse(v.GetString("mode"))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	opts.Mode = md
	opts.Verbose = v.GetBool("verbose")
	opts.Output = v.GetString("output")
	if !isValidOutput(opts.Output) {
		return fmt.Errorf(
			"%w: invalid output %q: must be one of %v",
			errUsage, opts.Output, ValidOutputs,
		)
	}
	opts.config = v
	return nil
}

// newLogger returns a no-op logger unless verbose is true, in which case it
// returns a development logger writing to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("sqltemporal")
}
