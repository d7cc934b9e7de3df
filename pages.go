package rwpaths

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/jward/rwpaths/internal/runtime"
)

// PageExt is the extension of a page module inside its directory.
const PageExt = ".js"

// PagesImportRoot is the import source prefix shared by all page modules.
const PagesImportRoot = "src/pages"

// ErrDuplicatePage is returned by CheckUnique when two pages share a Const.
var ErrDuplicatePage = errors.New("duplicate page identifier")

// Page describes one discovered page module.
type Page struct {
	Const           string `json:"const" yaml:"const"`
	Path            string `json:"path" yaml:"path"`
	ImportStatement string `json:"importStatement" yaml:"importStatement"`
}

// SourceFile returns the page module file, <Path>/<dir name>.js.
func (p Page) SourceFile() string {
	return filepath.Join(p.Path, filepath.Base(p.Path)+PageExt)
}

// ImportRenderer produces the import statement for a page. name is the
// generated identifier and source the module specifier under PagesImportRoot.
type ImportRenderer interface {
	RenderImport(ctx context.Context, name, source string) (string, error)
}

// ImportRendererFunc adapts a function to ImportRenderer.
type ImportRendererFunc func(ctx context.Context, name, source string) (string, error)

func (f ImportRendererFunc) RenderImport(ctx context.Context, name, source string) (string, error) {
	return f(ctx, name, source)
}

// DefaultImport renders a default-import ES module statement.
var DefaultImport = ImportRendererFunc(func(_ context.Context, name, source string) (string, error) {
	return fmt.Sprintf("import %s from '%s'", name, source), nil
})

// Walker discovers page modules under a pages directory.
type Walker struct {
	renderer  ImportRenderer
	logger    *slog.Logger
	script    string
	scriptFS  fs.FS
	scriptDir string
}

// Option configures a Walker.
type Option func(*Walker)

// WithImportRenderer replaces DefaultImport.
func WithImportRenderer(r ImportRenderer) Option {
	return func(w *Walker) {
		w.renderer = r
	}
}

// WithImportScript renders import statements with a Risor script. The script
// sees the globals name and source and must evaluate to a string.
func WithImportScript(src string) Option {
	return func(w *Walker) {
		w.script = src
	}
}

// WithScriptFS resolves Risor import statements in the import script
// against fsys, "import helper" loading helper.risor from its root.
func WithScriptFS(fsys fs.FS) Option {
	return func(w *Walker) {
		w.scriptFS = fsys
	}
}

// WithScriptDir resolves Risor import statements in the import script against
// dir on disk. WithScriptFS takes precedence.
func WithScriptDir(dir string) Option {
	return func(w *Walker) {
		w.scriptDir = dir
	}
}

// WithLogger sets the logger handed to import scripts.
func WithLogger(l *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = l
	}
}

// NewWalker creates a Walker. Without options it renders with DefaultImport.
func NewWalker(opts ...Option) *Walker {
	w := &Walker{renderer: DefaultImport}
	for _, opt := range opts {
		opt(w)
	}
	if w.script != "" {
		var rtOpts []runtime.Option
		if w.logger != nil {
			rtOpts = append(rtOpts, runtime.WithLogger(w.logger))
		}
		if w.scriptFS != nil {
			rtOpts = append(rtOpts, runtime.WithFS(w.scriptFS))
		}
		rt := runtime.NewRuntime(w.scriptDir, rtOpts...)
		w.renderer = runtime.NewScriptRenderer(rt, w.script)
	}
	return w
}

// ProcessPagesDir walks dir with a default Walker and returns every page.
// prefix seeds the identifier and import source of pages found at the top level.
func ProcessPagesDir(dir string, prefix ...string) ([]Page, error) {
	return NewWalker().Collect(context.Background(), dir, prefix...)
}

// Collect materializes Pages into a slice, stopping at the first error.
func (w *Walker) Collect(ctx context.Context, dir string, prefix ...string) ([]Page, error) {
	pages := []Page{}
	for p, err := range w.Pages(ctx, dir, prefix...) {
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// Pages returns a depth-first sequence of the pages under dir.
//
// Each subdirectory Foo holding Foo.js is a page. Any other subdirectory is a
// grouping directory: it is walked in place with its name appended to the
// prefix. Entries are visited in os.ReadDir order. Filesystem errors are
// yielded unchanged and end the sequence.
func (w *Walker) Pages(ctx context.Context, dir string, prefix ...string) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		w.walk(ctx, dir, slices.Clone(prefix), yield)
	}
}

// walk reports whether iteration should continue.
func (w *Walker) walk(ctx context.Context, dir string, prefix []string, yield func(Page, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		yield(Page{}, err)
		return false
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			yield(Page{}, err)
			return false
		}
		if !entry.IsDir() {
			continue
		}

		entryDir := filepath.Join(dir, entry.Name())
		_, err := os.Stat(filepath.Join(entryDir, entry.Name()+PageExt))
		switch {
		case err == nil:
			page, err := w.page(ctx, entryDir, prefix, entry.Name())
			if !yield(page, err) || err != nil {
				return false
			}
		case errors.Is(err, fs.ErrNotExist):
			if !w.walk(ctx, entryDir, append(slices.Clip(prefix), entry.Name()), yield) {
				return false
			}
		default:
			yield(Page{}, err)
			return false
		}
	}
	return true
}

func (w *Walker) page(ctx context.Context, entryDir string, prefix []string, name string) (Page, error) {
	base := strings.TrimSuffix(name, PageExt)
	importName := strings.Join(prefix, "") + base
	source := path.Join(append([]string{PagesImportRoot}, append(slices.Clip(prefix), base)...)...)

	stmt, err := w.renderer.RenderImport(ctx, importName, source)
	if err != nil {
		return Page{}, fmt.Errorf("rwpaths: rendering import for %s: %w", importName, err)
	}
	return Page{
		Const:           importName,
		Path:            entryDir,
		ImportStatement: stmt,
	}, nil
}

// DuplicateConsts maps each identifier used by more than one page to the
// paths of those pages, in input order.
func DuplicateConsts(pages []Page) map[string][]string {
	byConst := make(map[string][]string)
	for _, p := range pages {
		byConst[p.Const] = append(byConst[p.Const], p.Path)
	}
	dups := make(map[string][]string)
	for name, paths := range byConst {
		if len(paths) > 1 {
			dups[name] = paths
		}
	}
	return dups
}

// CheckUnique returns an ErrDuplicatePage error naming every colliding identifier.
func CheckUnique(pages []Page) error {
	dups := DuplicateConsts(pages)
	if len(dups) == 0 {
		return nil
	}
	names := make([]string, 0, len(dups))
	for name := range dups {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", name, strings.Join(dups[name], ", "))
	}
	return fmt.Errorf("%w: %s", ErrDuplicatePage, b.String())
}
