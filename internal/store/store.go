package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite manifest of a project's paths and pages.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the manifest tables. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS paths (
  ordinal         INTEGER PRIMARY KEY,
  key             TEXT NOT NULL UNIQUE,
  path            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
  ordinal         INTEGER PRIMARY KEY,
  const           TEXT NOT NULL,
  path            TEXT NOT NULL,
  import_statement TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_const ON pages(const);
`

// GetMetadata returns the value stored under key, or "" when absent.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get metadata %s: %w", key, err)
	}
	return value, nil
}

// WriteManifest replaces the stored paths and pages in one transaction and
// records the manifest hash. It reports false, writing nothing, when the
// stored hash already matches.
func (s *Store) WriteManifest(paths []PathRow, pages []PageRow) (bool, error) {
	hash := ComputeManifestHash(paths, pages)
	stored, err := s.GetMetadata(metaManifestHash)
	if err != nil {
		return false, err
	}
	if stored == hash {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("write manifest: begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM paths", "DELETE FROM pages"} {
		if _, err := tx.Exec(stmt); err != nil {
			return false, fmt.Errorf("write manifest: clear: %w", err)
		}
	}
	for i, p := range paths {
		if _, err := tx.Exec("INSERT INTO paths (ordinal, key, path) VALUES (?, ?, ?)", i, p.Key, p.Path); err != nil {
			return false, fmt.Errorf("write manifest: path %q: %w", p.Key, err)
		}
	}
	for i, p := range pages {
		if _, err := tx.Exec(
			"INSERT INTO pages (ordinal, const, path, import_statement) VALUES (?, ?, ?, ?)",
			i, p.Const, p.Path, p.ImportStatement,
		); err != nil {
			return false, fmt.Errorf("write manifest: page %q: %w", p.Const, err)
		}
	}
	if _, err := tx.Exec(
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		metaManifestHash, hash,
	); err != nil {
		return false, fmt.Errorf("write manifest: hash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write manifest: commit: %w", err)
	}
	return true, nil
}

// PathEntries returns the stored paths in write order.
func (s *Store) PathEntries() ([]PathRow, error) {
	rows, err := s.db.Query("SELECT key, path FROM paths ORDER BY ordinal")
	if err != nil {
		return nil, fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()

	var out []PathRow
	for rows.Next() {
		var p PathRow
		if err := rows.Scan(&p.Key, &p.Path); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Pages returns the stored pages in walk order.
func (s *Store) Pages() ([]PageRow, error) {
	rows, err := s.db.Query("SELECT const, path, import_statement FROM pages ORDER BY ordinal")
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var out []PageRow
	for rows.Next() {
		var p PageRow
		if err := rows.Scan(&p.Const, &p.Path, &p.ImportStatement); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
