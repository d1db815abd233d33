package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver           string
	DSN              string
	Format           string // "text" | "json" | "yaml"
	LogLevel         string
	LogFormat        string // "text" | "json"
	RetryMaxAttempts int
	OTel             bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// ValidLogFormats defines the allowed log formats.
var ValidLogFormats = []string{"text", "json"}

// NewRootCommand creates the root command of lendingctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lendingctl",
		Short: "Library lending engine",
		Long: `Run lending scripts against a library store.

Every line of a script is one operation running in its own transaction:
acquiring and selling books, registering members, loans and reservations,
plus catalog and loan queries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			if !slices.Contains(ValidLogFormats, opts.LogFormat) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats))
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Driver, "driver", "", "store driver (pgxpool|sqldb|sqlx|sqlite), overrides LENDING_DRIVER")
	flags.StringVar(&opts.DSN, "dsn", "", "PostgreSQL DSN, or the database file for sqlite")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides LENDING_LOG_LEVEL")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "log format on stderr (text|json)")
	flags.IntVar(&opts.RetryMaxAttempts, "retry-max-attempts", 0,
		"attempts per command on concurrency conflicts, overrides LENDING_RETRY_MAX_ATTEMPTS")
	flags.BoolVar(&opts.OTel, "otel", false, "record metrics and spans, print a metrics summary to stderr")

	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))

	return cmd
}

// resolveConfig loads the environment configuration and applies the flags that were set.
func (o *RootOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()

	if flags.Changed("driver") {
		cfg.Driver = o.Driver
	}

	if flags.Changed("dsn") {
		if cfg.Driver == config.DriverSQLite {
			cfg.SQLitePath = o.DSN
		} else {
			cfg.PostgresDSN = o.DSN
		}
	}

	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}

	if flags.Changed("retry-max-attempts") {
		cfg.RetryMaxAttempts = o.RetryMaxAttempts
	}

	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
