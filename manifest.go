package rwpaths

import (
	"fmt"

	"github.com/jward/rwpaths/internal/store"
)

// WriteManifest stores paths and pages in the SQLite database at dbPath,
// creating it if needed. It reports whether anything changed since the last
// write. The manifest is for downstream tools; nothing in this package reads it.
func WriteManifest(dbPath string, paths Paths, pages []Page) (bool, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return false, fmt.Errorf("rwpaths: create store: %w", err)
	}
	defer s.Close()
	if err := s.Migrate(); err != nil {
		return false, fmt.Errorf("rwpaths: migrate: %w", err)
	}

	entries := paths.Entries()
	pathRows := make([]store.PathRow, len(entries))
	for i, e := range entries {
		pathRows[i] = store.PathRow{Key: e.Key, Path: e.Path}
	}
	pageRows := make([]store.PageRow, len(pages))
	for i, p := range pages {
		pageRows[i] = store.PageRow{Const: p.Const, Path: p.Path, ImportStatement: p.ImportStatement}
	}

	changed, err := s.WriteManifest(pathRows, pageRows)
	if err != nil {
		return false, fmt.Errorf("rwpaths: %w", err)
	}
	return changed, nil
}

// Manifest is the content of a manifest database.
type Manifest struct {
	Paths []PathEntry `json:"paths" yaml:"paths"`
	Pages []Page      `json:"pages" yaml:"pages"`
}

// ReadManifest loads the paths and pages stored by WriteManifest, in the
// order they were written.
func ReadManifest(dbPath string) (Manifest, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("rwpaths: open store: %w", err)
	}
	defer s.Close()
	if err := s.Migrate(); err != nil {
		return Manifest{}, fmt.Errorf("rwpaths: migrate: %w", err)
	}

	pathRows, err := s.PathEntries()
	if err != nil {
		return Manifest{}, fmt.Errorf("rwpaths: %w", err)
	}
	pageRows, err := s.Pages()
	if err != nil {
		return Manifest{}, fmt.Errorf("rwpaths: %w", err)
	}

	m := Manifest{
		Paths: make([]PathEntry, len(pathRows)),
		Pages: make([]Page, len(pageRows)),
	}
	for i, r := range pathRows {
		m.Paths[i] = PathEntry{Key: r.Key, Path: r.Path}
	}
	for i, r := range pageRows {
		m.Pages[i] = Page{Const: r.Const, Path: r.Path, ImportStatement: r.ImportStatement}
	}
	return m, nil
}
