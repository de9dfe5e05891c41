package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/bridge"
	"github.com/xlg-lang/xlg/pkg/ioctx"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

// run executes the root command with args against a fresh store rooted
// at storeDir, returning everything written to stdout.
func run(t *testing.T, storeDir string, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--store", storeDir}, args...))

	var stdout bytes.Buffer
	ctx := ioctx.StdoutToContext(context.Background(), &stdout)
	ctx = ioctx.StderrToContext(ctx, &stdout)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)

	require.NoError(t, cmd.ExecuteContext(ctx))
	return stdout.String()
}

// writeValueDef writes a minimal "<name> = <literal int>" definition as a
// ".x" file via the Bridge's own renderer, so these tests exercise the
// same canonical text a real namespace export would produce.
func writeValueDef(t *testing.T, dir, filename, name string, value int64) string {
	t.Helper()
	tree := ast.NewTree()
	node := tree.Build(symbol.Span{}, ast.ValueDef{
		Name: name,
		Body: tree.Build(symbol.Span{}, ast.LitInt{Value: value}),
	})
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte(bridge.Render(node)), 0o644))
	return path
}

func TestHashCommandPrintsDefinitionHash(t *testing.T) {
	dir := t.TempDir()
	file := writeValueDef(t, dir, "one.x", "One", 1)

	out := run(t, filepath.Join(dir, ".xlg"), "hash", file)
	assert.Len(t, strings.TrimSpace(out), 64)
}

func TestHashCommandOnUnparsableFileIsUserError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.x")
	require.NoError(t, os.WriteFile(file, []byte("(not valid"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--store", filepath.Join(dir, ".xlg"), "hash", file})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	ctx := ioctx.StdoutToContext(context.Background(), &stdout)

	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeOf(err))
}

func TestNamespaceImportExportRoundTrip(t *testing.T) {
	storeDir := t.TempDir()
	src := t.TempDir()
	writeValueDef(t, src, "greeting.x", "Greeting", 7)

	out := run(t, storeDir, "namespace", "import", "--path", "Main", src)
	assert.Contains(t, out, "imported 1 definitions, 1 new commits")

	out = run(t, storeDir, "namespace", "show", "Main")
	assert.Contains(t, out, "Greeting")

	out = run(t, storeDir, "namespace", "show", "Main.Greeting")
	assert.Contains(t, out, "Greeting")

	exportDir := t.TempDir()
	run(t, storeDir, "namespace", "export", "--path", "Main", exportDir)
	_, err := os.Stat(filepath.Join(exportDir, "greeting.x"))
	require.NoError(t, err)
}

func TestNamespaceEditReplacesHeadAndAppendsHistory(t *testing.T) {
	storeDir := t.TempDir()
	src := t.TempDir()
	writeValueDef(t, src, "one.x", "One", 1)
	run(t, storeDir, "namespace", "import", "--path", "Main", src)

	tree := ast.NewTree()
	replacement := tree.Build(symbol.Span{}, ast.ValueDef{
		Name: "One",
		Body: tree.Build(symbol.Span{}, ast.LitInt{Value: 2}),
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--store", storeDir, "namespace", "edit", "Main.One"})
	cmd.SetIn(strings.NewReader(bridge.Render(replacement)))
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	ctx := ioctx.StdoutToContext(context.Background(), &stdout)
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, stdout.String(), "Main.One: committed")

	out := run(t, storeDir, "namespace", "log", "Main.One")
	assert.Equal(t, 2, strings.Count(out, "Edit Main.One"))
}

func TestVersionTagAndShow(t *testing.T) {
	storeDir := t.TempDir()
	src := t.TempDir()
	writeValueDef(t, src, "one.x", "One", 1)
	run(t, storeDir, "namespace", "import", "--path", "Main", src)

	run(t, storeDir, "version", "tag", "Main.One", "1.0.0")
	out := run(t, storeDir, "version", "show", "Main.One")
	assert.Contains(t, out, "1.0.0")
}

func TestVersionTagRejectsInvalidSemver(t *testing.T) {
	storeDir := t.TempDir()
	src := t.TempDir()
	writeValueDef(t, src, "one.x", "One", 1)
	run(t, storeDir, "namespace", "import", "--path", "Main", src)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--store", storeDir, "version", "tag", "Main.One", "not-a-version"})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	ctx := ioctx.StdoutToContext(context.Background(), &stdout)
	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeOf(err))
}

func TestVersionDepsReportsNoDependenciesForALeafDefinition(t *testing.T) {
	storeDir := t.TempDir()
	src := t.TempDir()
	writeValueDef(t, src, "one.x", "One", 1)
	run(t, storeDir, "namespace", "import", "--path", "Main", src)

	out := run(t, storeDir, "version", "deps", "Main.One")
	assert.Contains(t, out, "no dependencies")
}

func TestOutdatedReportsNoStaleReferencesOnFreshImport(t *testing.T) {
	storeDir := t.TempDir()
	src := t.TempDir()
	writeValueDef(t, src, "one.x", "One", 1)
	run(t, storeDir, "namespace", "import", "--path", "Main", src)

	out := run(t, storeDir, "outdated")
	assert.Contains(t, out, "no outdated references")
}
