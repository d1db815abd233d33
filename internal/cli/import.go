package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/script"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Init      bool
	HasHeader bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <books.csv>",
		Short: "Acquire the books listed in a CSV file",
		Long: `Acquire one book per CSV record "title,author".
Every book is acquired in its own transaction, a rejected record does not stop the import.

Example:
  lendingctl import --header --init books.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importBooks(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Init, "init", false, "create the schema before importing")
	cmd.Flags().BoolVar(&opts.HasHeader, "header", false, "skip the first record")

	return cmd
}

func importBooks(cmd *cobra.Command, opts *ImportOptions, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open csv", err)
	}
	defer func() { _ = file.Close() }()

	statements, err := acquireStatements(file, opts.HasHeader)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid csv", err)
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
	env.logger.Info("import finished", "file", path, "acquired", report.Succeeded, "rejected", report.Failed)

	if err = writeReport(cmd.OutOrStdout(), opts.Format, report); err != nil {
		return WrapExitError(ExitCommandError, "cannot write report", err)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d books rejected", report.Failed, len(report.Steps)))
	}

	return nil
}

// acquireStatements turns every CSV record into an acquire statement, the line is the record number.
func acquireStatements(r io.Reader, hasHeader bool) ([]script.Statement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var statements []script.Statement

	for record := 1; ; record++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if record == 1 && hasHeader {
			continue
		}

		statements = append(statements, script.Statement{
			Line: record,
			Op:   script.OpAcquire,
			Args: []string{strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])},
		})
	}

	return statements, nil
}
