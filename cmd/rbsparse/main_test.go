package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a configuration file that disables
// color, and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), ".rbsparse.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("color = \"never\"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "point.rbs", "class Point\n  attr_reader x: Integer\nend\n")

	stdout, _, err := run(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# "+path)
	assert.Contains(t, stdout, "class Point\n  attr_reader x: Integer\nend\n")
}

func TestParseDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rbs", "type id = Integer\n")
	writeFile(t, dir, "notes.txt", "not a signature")

	stdout, _, err := run(t, "parse", "-o", "json", dir)
	require.NoError(t, err)

	var decls []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decls))
	require.Len(t, decls, 1)
	assert.Equal(t, "alias", decls[0]["class"])
	assert.Equal(t, "id", decls[0]["name"])
}

func TestParseReportsErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rbs", "module Kernel\nend\n")
	bad := writeFile(t, dir, "bad.rbs", "class Foo\n")

	stdout, stderr, err := run(t, "parse", good, bad)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stdout, "module Kernel")
	assert.Contains(t, stderr, "error[E0100]")
	assert.Contains(t, stderr, bad+":2:1")
}

func TestParseDepthLimit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "deep.rbs", "type t = [[[Integer]]]\n")

	_, stderr, err := run(t, "parse", "--max-depth", "2", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "E0103")
}

func TestTypeCommand(t *testing.T) {
	stdout, stderr, err := run(t, "type", "--cross-check", "Array[Integer] | nil")
	require.NoError(t, err)
	assert.Equal(t, "Array[Integer] | nil\n", stdout)
	assert.Contains(t, stderr, "reference grammar agrees: Array[Integer] | nil")
}

func TestTypeCommandVariablesYAML(t *testing.T) {
	stdout, _, err := run(t, "type", "-o", "yaml", "--var", "T", "T?")
	require.NoError(t, err)
	assert.Contains(t, stdout, "class: optional")
	assert.Contains(t, stdout, "class: variable")
	assert.Contains(t, stdout, "name: T")
}

func TestTypeCommandSyntaxError(t *testing.T) {
	_, stderr, err := run(t, "type", "Array[")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "(type):1:")
}

func TestMethodCommand(t *testing.T) {
	stdout, _, err := run(t, "method", "[T] (T) { () -> void } -> T")
	require.NoError(t, err)
	assert.Equal(t, "[T] (T) { () -> void } -> T\n", stdout)
}

func TestTokensCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "alias.rbs", "type t = Integer\n")

	stdout, _, err := run(t, "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "TYPE")
	assert.Contains(t, stdout, "LIDENT")
	assert.Contains(t, stdout, `"Integer"`)
	assert.Contains(t, stdout, "EOF")
}

func TestTokensCommandIllegal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.rbs", "type t = \"open\n")

	_, stderr, err := run(t, "tokens", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "illegal token")
}

func TestInvalidFlagValue(t *testing.T) {
	_, _, err := run(t, "--output", "xml", "type", "Integer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be one of")
}

func TestParseStatusLine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.rbs", "# nothing here\n")

	_, stderr, err := run(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Parsed 1 file(s) in ")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2.00min", formatDuration(2*time.Minute))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.5ms", formatDuration(2500*time.Microsecond))
	assert.Equal(t, "3.0μs", formatDuration(3*time.Microsecond))
	assert.Equal(t, "42ns", formatDuration(42*time.Nanosecond))
}

func TestTypeCommandNestingLimit(t *testing.T) {
	_, stderr, err := run(t, "type", "--max-depth", "4", strings.Repeat("^-> ", 6)+"void")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "error[E0103]")

	_, stderr, err = run(t, "type", "--max-depth", "4", "[[[[[Integer]]]]]")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "error[E0103]")
}

func TestMethodCommandNestingLimit(t *testing.T) {
	_, stderr, err := run(t, "method", "--max-depth", "4", "() -> "+strings.Repeat("^-> ", 6)+"void")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "error[E0103]")
}

func TestREPLCommandNestingLimit(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), ".rbsparse.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("color = \"never\"\nmax_depth = 4\n"), 0o644))

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("Integer\n" + strings.Repeat("^-> ", 6) + "void\n"))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", cfg, "repl"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), ">> Integer\n")
	assert.Contains(t, stdout.String(), "error[E0103]")
}
