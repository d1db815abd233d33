package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/script"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

const shellPrompt = "lending> "

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	Init        bool
	HistoryFile string
}

// lineReader is the part of *readline.Instance the shell loop needs.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShellOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run lending operations interactively",
		Long: `Read script lines from the terminal and run each one as soon as it is entered.
Aliases stay bound for the whole session. "help" lists the operations, "exit" or Ctrl-D ends the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setUp(cmd, opts.RootOptions)
			if err != nil {
				return err
			}
			defer env.close()

			if opts.Init {
				if err = env.store.CreateSchema(cmd.Context()); err != nil {
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

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          shellPrompt,
				HistoryFile:     opts.HistoryFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot open terminal", err)
			}

			interpreter := script.NewInterpreter(handlers, script.WithLogger(env.logger))

			return runShell(cmd.Context(), rl, cmd.OutOrStdout(), interpreter, opts.Format)
		},
	}

	cmd.Flags().BoolVar(&opts.Init, "init", false, "create the schema before the session starts")
	cmd.Flags().StringVar(&opts.HistoryFile, "history", defaultHistoryFile(), "file keeping the line history, empty disables it")

	return cmd
}

// runShell reads lines until EOF, "exit" or a canceled context. Syntax errors and failing operations
// are printed and the session goes on.
func runShell(ctx context.Context, reader lineReader, out io.Writer, interpreter *script.Interpreter, format string) error {
	defer func() { _ = reader.Close() }()

	for lineNumber := 1; ctx.Err() == nil; lineNumber++ {
		line, err := reader.Readline()

		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return WrapExitError(ExitCommandError, "cannot read line", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			for _, usage := range script.Usage() {
				_, _ = fmt.Fprintln(out, "  "+usage)
			}
			continue
		}

		statements, err := script.Parse(strings.NewReader(line))
		if err != nil {
			_, _ = fmt.Fprintln(out, err)
			continue
		}

		for i := range statements {
			statements[i].Line = lineNumber
		}

		if err = writeReport(out, format, interpreter.Run(ctx, statements)); err != nil {
			return WrapExitError(ExitCommandError, "cannot write report", err)
		}
	}

	return nil
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "lendingctl_history")
}
