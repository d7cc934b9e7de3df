package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jward/rwpaths"
	"github.com/jward/rwpaths/internal/runtime"
	"github.com/jward/rwpaths/scripts"
	"github.com/spf13/cobra"
)

var (
	flagStrict       bool
	flagImportStyle  string
	flagImportScript string
)

// errCheckFailed is returned by check after the findings are printed.
var errCheckFailed = errors.New("page check failed")

var pagesCmd = &cobra.Command{
	Use:   "pages [dir]",
	Short: "List the page modules under the pages directory",
	Long:  "Walks dir (default: the project's web/src/pages) and prints one descriptor per page: its identifier, directory and import statement.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPages,
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Report pages that a route generator cannot import",
	Long:  "Parses every page module and reports pages without a default export, pages with syntax errors, and identifiers shared by more than one page.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	for _, cmd := range []*cobra.Command{pagesCmd, exportCmd} {
		cmd.Flags().BoolVar(&flagStrict, "strict", false, "fail when two pages generate the same identifier")
		cmd.Flags().StringVar(&flagImportStyle, "import-style", "", "bundled import script: default|lazy (default: built-in renderer)")
		cmd.Flags().StringVar(&flagImportScript, "import-script", "", "render import statements with this Risor script")
	}
}

func runPages(cmd *cobra.Command, args []string) error {
	dir, err := pagesDir(args)
	if err != nil {
		return outputError("pages", err)
	}
	pages, err := walkPages(contextOf(cmd), dir)
	if err != nil {
		return outputError("pages", err)
	}
	return outputResult(CLIResult{Command: "pages", Results: toCLIPages(pages), TotalCount: intPtr(len(pages))})
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, err := pagesDir(args)
	if err != nil {
		return outputError("check", err)
	}
	ctx := contextOf(cmd)
	pages, err := rwpaths.NewWalker().Collect(ctx, dir)
	if err != nil {
		return outputError("check", err)
	}

	report, err := buildCheckReport(ctx, pages)
	if err != nil {
		return outputError("check", err)
	}
	if err := outputResult(CLIResult{Command: "check", Results: report}); err != nil {
		return err
	}
	if !report.OK() {
		errorHandled = true
		return errCheckFailed
	}
	return nil
}

// buildCheckReport inspects every page. Findings keep walk order.
func buildCheckReport(ctx context.Context, pages []rwpaths.Page) (CLICheckReport, error) {
	report := CLICheckReport{Pages: len(pages), Duplicates: rwpaths.DuplicateConsts(pages)}
	for _, p := range pages {
		mod, err := rwpaths.InspectPage(ctx, p)
		if err != nil {
			return CLICheckReport{}, err
		}
		logger.Debug("inspected page", "const", p.Const, "default", mod.DefaultExport, "named", mod.NamedExports)
		if !mod.HasDefaultExport {
			report.MissingDefault = append(report.MissingDefault, toCLIPage(p))
		}
		if mod.SyntaxErrors {
			report.SyntaxErrors = append(report.SyntaxErrors, toCLIPage(p))
		}
	}
	return report, nil
}

// pagesDir returns args[0] made absolute, or the project's web.pages path.
func pagesDir(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	paths, err := resolveProject()
	if err != nil {
		return "", err
	}
	return paths.Web.Pages, nil
}

// walkPages collects pages with the renderer selected by flags.
func walkPages(ctx context.Context, dir string) ([]rwpaths.Page, error) {
	w, err := buildWalker()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pages, err := w.Collect(ctx, dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("walked pages", "dir", dir, "count", len(pages), "elapsed", time.Since(start).Round(time.Microsecond))

	if dups := rwpaths.DuplicateConsts(pages); len(dups) > 0 {
		if flagStrict {
			return nil, rwpaths.CheckUnique(pages)
		}
		for name, paths := range dups {
			logger.Warn("duplicate page identifier", "const", name, "paths", paths)
		}
	}
	return pages, nil
}

func buildWalker() (*rwpaths.Walker, error) {
	opts := []rwpaths.Option{rwpaths.WithLogger(logger)}

	switch {
	case flagImportScript != "" && flagImportStyle != "":
		return nil, fmt.Errorf("--import-script and --import-style are mutually exclusive")
	case flagImportScript != "":
		script, err := filepath.Abs(flagImportScript)
		if err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", flagImportScript, err)
		}
		src, err := runtime.NewRuntime("").LoadScript(script)
		if err != nil {
			return nil, err
		}
		// Helpers imported by the script live next to it.
		opts = append(opts, rwpaths.WithImportScript(src), rwpaths.WithScriptDir(filepath.Dir(script)))
	case flagImportStyle != "":
		rt := runtime.NewRuntime("", runtime.WithFS(scripts.FS))
		src, err := rt.LoadScript(runtime.ImportScriptPath(flagImportStyle))
		if err != nil {
			return nil, fmt.Errorf("unknown import style %q: %w", flagImportStyle, err)
		}
		opts = append(opts, rwpaths.WithImportScript(src), rwpaths.WithScriptFS(scripts.Lib()))
	}
	return rwpaths.NewWalker(opts...), nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func intPtr(n int) *int { return &n }
