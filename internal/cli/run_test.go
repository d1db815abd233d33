package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/internal/cli"
)

const queueScript = `# one book, two members, a queue
acquire $dune | Dune | Frank Herbert
register $ann | Ann | 555-0101 | 3
register $bob | Bob | 555-0102 | 3
begin $l1 | $dune | $ann
place $r1 | $dune | $bob
begin | $dune | $bob
terminate | $l1 | $ann
use $l2 | $r1
queue | $dune
`

type jsonReport struct {
	Steps []struct {
		Line      int    `json:"line"`
		Op        string `json:"op"`
		Status    string `json:"status"`
		ErrorKind string `json:"error_kind"`
	} `json:"steps"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func Test_RunCommand_RunsScriptAgainstSQLite(t *testing.T) {
	// arrange
	dir := t.TempDir()
	t.Setenv("LENDING_DRIVER", "sqlite")
	scriptPath := writeFile(t, dir, "queue.txt", queueScript)

	// act
	stdout, _, err := execute(t, "run", "--init", "--dsn", filepath.Join(dir, "library.db"), "--format", "json", scriptPath)

	// assert
	require.Error(t, err, "the rejected loan of Bob fails one line")
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))

	var report jsonReport
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Steps, 8)
	assert.Equal(t, 7, report.Succeeded)
	assert.Equal(t, 1, report.Failed)

	rejected := report.Steps[5]
	assert.Equal(t, 7, rejected.Line)
	assert.Equal(t, "begin", rejected.Op)
	assert.Equal(t, "failed", rejected.Status)
	assert.Equal(t, "existing_loan", rejected.ErrorKind)
}

func Test_RunCommand_ReadsStdinAndKeepsState(t *testing.T) {
	// arrange
	dir := t.TempDir()
	t.Setenv("LENDING_DRIVER", "sqlite")
	dbPath := filepath.Join(dir, "library.db")

	_, _, err := execute(t, "schema", "--dsn", dbPath)
	require.NoError(t, err)

	// act
	cmd := cli.NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetIn(strings.NewReader("acquire | Dune | Frank Herbert\ncatalog\n"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--dsn", dbPath, "-"})
	err = cmd.Execute()

	// assert
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Dune")
	assert.Contains(t, stdout.String(), "2 succeeded, 0 failed")
}

func Test_RunCommand_YAMLFormat(t *testing.T) {
	// arrange
	dir := t.TempDir()
	t.Setenv("LENDING_DRIVER", "sqlite")
	scriptPath := writeFile(t, dir, "s.txt", "acquire $dune | Dune | Frank Herbert\n")

	// act
	stdout, _, err := execute(t, "run", "--init", "--format", "yaml", "--dsn", filepath.Join(dir, "library.db"), scriptPath)

	// assert
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: ok")
	assert.Contains(t, stdout, "alias: $dune")
	assert.Contains(t, stdout, "succeeded: 1")
}

func Test_RunCommand_RejectsSyntaxErrorsBeforeOpeningTheStore(t *testing.T) {
	// arrange
	dir := t.TempDir()
	t.Setenv("LENDING_DRIVER", "sqlite")
	scriptPath := writeFile(t, dir, "broken.txt", "acquire | Dune\nfly | away\n")
	dbPath := filepath.Join(dir, "library.db")

	// act
	_, _, err := execute(t, "run", "--dsn", dbPath, scriptPath)

	// assert
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "line 2")
	assert.NoFileExists(t, dbPath)
}

func Test_RunCommand_MissingScriptFile(t *testing.T) {
	// arrange
	t.Setenv("LENDING_DRIVER", "sqlite")

	// act
	_, _, err := execute(t, "run", "--dsn", filepath.Join(t.TempDir(), "library.db"), "does-not-exist.txt")

	// assert
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}

func Test_RunCommand_InvalidConfiguration(t *testing.T) {
	// arrange
	scriptPath := writeFile(t, t.TempDir(), "s.txt", "catalog\n")

	// act
	_, _, err := execute(t, "run", "--driver", "oracle", scriptPath)

	// assert
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func Test_RunCommand_WithTelemetryPrintsMetricsSummary(t *testing.T) {
	// arrange
	dir := t.TempDir()
	t.Setenv("LENDING_DRIVER", "sqlite")
	scriptPath := writeFile(t, dir, "s.txt", "acquire | Dune | Frank Herbert\ncatalog\n")

	// act
	_, stderr, err := execute(t, "run", "--init", "--otel", "--log-level", "debug", "--log-format", "json",
		"--dsn", filepath.Join(dir, "library.db"), scriptPath)

	// assert
	require.NoError(t, err)
	assert.Contains(t, stderr, "commandhandler_handle_calls_total")
	assert.Contains(t, stderr, "queryhandler_handle_calls_total")
	assert.Contains(t, stderr, `"msg":"span finished"`)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
