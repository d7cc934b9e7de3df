package rwpaths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProject creates a temp dir holding redwood.toml and returns its path.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("[web]\n  port = 8910\n"), 0o644))
	return root
}

func TestFindConfigFrom_BaseDirectory(t *testing.T) {
	t.Parallel()
	root := newProject(t)

	got, err := FindConfigFrom(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ConfigFileName), got)
}

func TestFindConfigFrom_NestedSubdirectory(t *testing.T) {
	t.Parallel()
	root := newProject(t)
	deep := filepath.Join(root, "web", "src", "pages", "Home")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := FindConfigFrom(deep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ConfigFileName), got)
}

func TestFindConfigFrom_NearestAncestorWins(t *testing.T) {
	t.Parallel()
	outer := newProject(t)
	inner := filepath.Join(outer, "packages", "app")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inner, ConfigFileName), nil, 0o644))

	got, err := FindConfigFrom(inner)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(inner, ConfigFileName), got)
}

func TestFindConfigFrom_NotFound(t *testing.T) {
	t.Parallel()
	// TempDir has no redwood.toml anywhere in its ancestry
	// (unless /tmp itself sits inside a Redwood project, which would be unusual).
	dir := t.TempDir()

	_, err := FindConfigFrom(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Contains(t, err.Error(), `"redwood.toml"`)
	assert.Contains(t, err.Error(), "are you sure you're in a Redwood project?")

	var notFound *ConfigNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, dir, notFound.StartDir)
}

func TestFindConfigFrom_DirectoryWithConfigNameIgnored(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ConfigFileName), 0o755))

	_, err := FindConfigFrom(dir)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestFindConfig_UsesWorkingDirectory(t *testing.T) {
	root := newProject(t)
	sub := filepath.Join(root, "api")
	require.NoError(t, os.Mkdir(sub, 0o755))
	t.Chdir(sub)

	got, err := FindConfig()
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(got))

	// Compare through EvalSymlinks: Getwd may report a resolved temp path.
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	require.NoError(t, err)
	assert.Equal(t, want, gotDir)
}

func TestBaseDir(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.FromSlash("/home/me/project"), BaseDir(filepath.FromSlash("/home/me/project/redwood.toml")))
}

func TestFindBaseDir(t *testing.T) {
	t.Parallel()
	root := newProject(t)
	sub := filepath.Join(root, "web")
	require.NoError(t, os.Mkdir(sub, 0o755))

	got, err := FindBaseDir(sub)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = FindBaseDir(t.TempDir())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestResolvePaths(t *testing.T) {
	t.Parallel()
	sep := string(filepath.Separator)
	base := filepath.FromSlash("/proj")

	got := ResolvePaths(base)

	assert.Equal(t, base, got.Base)
	assert.Equal(t, filepath.FromSlash("/proj/api/src/functions"), got.API.Functions)
	assert.Equal(t, filepath.FromSlash("/proj/api/src/graphql"), got.API.GraphQL)
	assert.Equal(t, filepath.FromSlash("/proj/web/src/Routes.js"), got.Web.Routes)
	assert.Equal(t, filepath.FromSlash("/proj/web/src/pages")+sep, got.Web.Pages)
	assert.Equal(t, filepath.FromSlash("/proj/web/src/components"), got.Web.Components)
}

func TestResolvePaths_NoExistenceCheck(t *testing.T) {
	t.Parallel()
	base := filepath.Join(t.TempDir(), "does-not-exist")

	got := ResolvePaths(base)
	assert.Equal(t, filepath.Join(base, "api", "src", "functions"), got.API.Functions)
	assert.NoDirExists(t, got.API.Functions)
}

func TestResolvePaths_EveryLayoutKeyIsSet(t *testing.T) {
	t.Parallel()
	got := ResolvePaths(filepath.FromSlash("/proj"))

	for _, e := range Layout {
		p, ok := got.Lookup(e.Key)
		require.True(t, ok, "key %s", e.Key)
		assert.NotEmpty(t, p, "key %s", e.Key)
	}
}

func TestPaths_Lookup(t *testing.T) {
	t.Parallel()
	got := ResolvePaths(filepath.FromSlash("/proj"))

	base, ok := got.Lookup("base")
	require.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/proj"), base)

	routes, ok := got.Lookup(KeyWebRoutes)
	require.True(t, ok)
	assert.Equal(t, got.Web.Routes, routes)

	_, ok = got.Lookup("web.layouts")
	assert.False(t, ok)
}

func TestPaths_EntriesFollowLayoutOrder(t *testing.T) {
	t.Parallel()
	entries := ResolvePaths(filepath.FromSlash("/proj")).Entries()

	require.Len(t, entries, len(Layout)+1)
	assert.Equal(t, "base", entries[0].Key)
	for i, e := range Layout {
		assert.Equal(t, e.Key, entries[i+1].Key)
	}
}

func TestGetPaths(t *testing.T) {
	root := newProject(t)
	t.Chdir(root)

	got, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(got.Base, "api", "src", "graphql"), got.API.GraphQL)
	assert.FileExists(t, filepath.Join(got.Base, ConfigFileName))
}
