package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jward/rwpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDBPath(t *testing.T) {
	t.Parallel()
	base := filepath.FromSlash("/proj")

	assert.Equal(t, filepath.FromSlash("/proj/.redwood/pages.db"), resolveDBPath(base, filepath.FromSlash(".redwood/pages.db")))
	abs := filepath.FromSlash("/tmp/pages.db")
	assert.Equal(t, abs, resolveDBPath(base, abs))
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("yaml"))
	assert.Error(t, validateFormat("toml"))
}

func TestOutputResultText_Paths(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := outputResultText(&buf, CLIResult{Results: rwpaths.ResolvePaths(filepath.FromSlash("/proj"))})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "web.components")
	assert.Contains(t, out, filepath.FromSlash("/proj/api/src/graphql"))
}

func TestOutputResultText_Pages(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	pages := []CLIPage{{Const: "Home", Path: "/proj/web/src/pages/Home", ImportStatement: "import Home from 'src/pages/Home'"}}
	require.NoError(t, outputResultText(&buf, CLIResult{Results: pages}))

	assert.Contains(t, buf.String(), "CONST")
	assert.Contains(t, buf.String(), "import Home from 'src/pages/Home'")
}

func TestOutputResultText_String(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, outputResultText(&buf, CLIResult{Results: "/proj/redwood.toml"}))
	assert.Equal(t, "/proj/redwood.toml\n", buf.String())
}

func TestOutputResultText_Unsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Error(t, outputResultText(&buf, CLIResult{Results: 42}))
}

func TestCheckReport(t *testing.T) {
	t.Parallel()
	ok := CLICheckReport{Pages: 2}
	assert.True(t, ok.OK())

	var buf bytes.Buffer
	formatCheckText(&buf, ok)
	assert.Contains(t, buf.String(), "No problems found.")

	bad := CLICheckReport{
		Pages:          3,
		MissingDefault: []CLIPage{{Const: "Users", Path: "/p/Users"}},
		Duplicates:     map[string][]string{"AdminUsers": {"/p/Admin/Users", "/p/AdminUsers"}},
	}
	assert.False(t, bad.OK())

	buf.Reset()
	formatCheckText(&buf, bad)
	assert.Contains(t, buf.String(), "Missing default export:")
	assert.Contains(t, buf.String(), "Users (/p/Users)")
	assert.Contains(t, buf.String(), "AdminUsers: /p/Admin/Users, /p/AdminUsers")
}

func TestBuildCheckReport_KeepsWalkOrder(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	// Walk order is A/Z then AB, so the consts AZ, AB are not sorted.
	for _, rel := range []string{"A/Z/Z.js", "AB/AB.js"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export const meta = (\n"), 0o644))
	}

	pages, err := rwpaths.NewWalker().Collect(context.Background(), root)
	require.NoError(t, err)
	report, err := buildCheckReport(context.Background(), pages)
	require.NoError(t, err)

	var missing, broken []string
	for _, p := range report.MissingDefault {
		missing = append(missing, p.Const)
	}
	for _, p := range report.SyntaxErrors {
		broken = append(broken, p.Const)
	}
	assert.Equal(t, []string{"AZ", "AB"}, missing)
	assert.Equal(t, []string{"AZ", "AB"}, broken)
	assert.False(t, report.OK())
}

func TestFormatExportText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	formatExportText(&buf, CLIExport{Database: "pages.db", Pages: 2, Changed: true})
	assert.Equal(t, "pages.db: 2 pages (updated)\n", buf.String())
}

func TestOutputResultYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	pages := []CLIPage{{Const: "AdminUsers", Path: "/p/Admin/Users", ImportStatement: "import AdminUsers from 'src/pages/Admin/Users'"}}
	require.NoError(t, outputResultYAML(&buf, CLIResult{Command: "pages", Results: pages, TotalCount: intPtr(1)}))

	out := buf.String()
	assert.Contains(t, out, "command: pages")
	assert.Contains(t, out, "const: AdminUsers")
	assert.Contains(t, out, "total_count: 1")
}
