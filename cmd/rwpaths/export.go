package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jward/rwpaths"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <db>",
	Short: "Write the project's paths and pages into a SQLite manifest",
	Long:  "Resolves the project paths, walks web/src/pages and stores both in the SQLite database at db. A relative db path is taken relative to the project base directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	paths, err := resolveProject()
	if err != nil {
		return outputError("export", err)
	}
	pages, err := walkPages(contextOf(cmd), paths.Web.Pages)
	if err != nil {
		return outputError("export", err)
	}

	dbPath := resolveDBPath(paths.Base, args[0])
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return outputError("export", fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err))
	}
	changed, err := rwpaths.WriteManifest(dbPath, paths, pages)
	if err != nil {
		return outputError("export", err)
	}

	fmt.Fprintf(os.Stderr, "Exported %d pages to %s in %s\n", len(pages), dbPath, time.Since(start).Round(time.Millisecond))
	return outputResult(CLIResult{Command: "export", Results: CLIExport{
		Database: dbPath,
		Pages:    len(pages),
		Changed:  changed,
	}})
}

// resolveDBPath anchors a relative db path at the project base directory.
func resolveDBPath(base, dbPath string) string {
	if filepath.IsAbs(dbPath) {
		return dbPath
	}
	return filepath.Join(base, dbPath)
}
