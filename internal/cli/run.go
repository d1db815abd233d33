package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/script"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Init bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a lending script",
		Long: `Run a lending script, one operation per line, fields separated by "|".

Lines starting with # are comments. "$name" after the operation binds the id of
the created entity, later lines refer to it as $name.

Example script:
  acquire $dune | Dune | Frank Herbert
  register $ann | Ann | 555-0101 | 3
  begin $l1 | $dune | $ann
  catalog

Example:
  lendingctl run --init --driver sqlite --dsn ./library.db loans.txt
  cat loans.txt | lendingctl run --format json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Init, "init", false, "create the schema before running the script")

	return cmd
}

func runScript(cmd *cobra.Command, opts *RunOptions, path string) error {
	statements, err := readScript(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	env, err := setUp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	ctx := cmd.Context()

	if opts.Init {
		if err = env.store.CreateSchema(ctx); err != nil {
			return WrapExitError(ExitCommandError, "cannot create schema", err)
		}
	}

	handlers, err := script.Instrument(
		script.NewHandlers(env.store, shell.WithMaxAttempts(env.cfg.RetryMaxAttempts)),
		env.observability(),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot instrument handlers", err)
	}

	report := script.NewInterpreter(handlers, script.WithLogger(env.logger)).Run(ctx, statements)

	if err = writeReport(cmd.OutOrStdout(), opts.Format, report); err != nil {
		return WrapExitError(ExitCommandError, "cannot write report", err)
	}

	if env.telemetry != nil {
		if err = env.telemetry.writeSummary(ctx, cmd.ErrOrStderr()); err != nil {
			env.logger.Warn("metrics summary failed", "error", err.Error())
		}
	}

	if ctx.Err() != nil {
		return WrapExitError(ExitFailure, "script interrupted", ctx.Err())
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d lines failed", report.Failed, len(report.Steps)))
	}

	return nil
}

func readScript(stdin io.Reader, path string) ([]script.Statement, error) {
	source := stdin

	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "cannot open script", err)
		}
		defer func() { _ = file.Close() }()

		source = file
	}

	statements, err := script.Parse(source)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid script", err)
	}

	return statements, nil
}

func writeReport(w io.Writer, format string, report script.Report) error {
	switch format {
	case "json":
		return report.WriteJSON(w)
	case "yaml":
		return report.WriteYAML(w)
	default:
		return report.WriteText(w)
	}
}
