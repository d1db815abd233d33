package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the tables of the store",
		Long: `Create the books, members, loans and reservations tables with their indexes.
Existing tables are left untouched, so running it twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setUp(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer env.close()

			if err = env.store.CreateSchema(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "cannot create schema", err)
			}

			env.logger.Info("schema created", "driver", env.cfg.Driver, "dialect", env.store.DialectName())

			switch rootOpts.Format {
			case "json":
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "{\"status\":\"ok\",\"dialect\":%q}\n", env.store.DialectName())
			case "yaml":
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "status: ok\ndialect: %s\n", env.store.DialectName())
			default:
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", env.store.DialectName())
			}

			return err
		},
	}
}
