package rwpaths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the anchor file marking the base directory of a project.
const ConfigFileName = "redwood.toml"

// ErrConfigNotFound is returned when no ancestor directory contains ConfigFileName.
var ErrConfigNotFound = errors.New(`could not find a "` + ConfigFileName + `" file, are you sure you're in a Redwood project?`)

// ConfigNotFoundError records where an unsuccessful anchor search began.
type ConfigNotFoundError struct {
	StartDir string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("%s (searched upward from %s)", ErrConfigNotFound, e.StartDir)
}

func (e *ConfigNotFoundError) Unwrap() error { return ErrConfigNotFound }

// FindConfig searches the working directory and its ancestors for ConfigFileName.
func FindConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("rwpaths: working directory: %w", err)
	}
	return FindConfigFrom(cwd)
}

// FindConfigFrom walks up from startDir and returns the absolute path of the
// first ConfigFileName it finds. A directory with that name does not match.
func FindConfigFrom(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("rwpaths: resolving %q: %w", startDir, err)
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", &ConfigNotFoundError{StartDir: abs}
		}
		dir = parent
	}
}

// BaseDir returns the directory holding the anchor file at configPath.
func BaseDir(configPath string) string {
	return filepath.Dir(configPath)
}

// FindBaseDir locates the anchor file from startDir and returns its directory.
func FindBaseDir(startDir string) (string, error) {
	configPath, err := FindConfigFrom(startDir)
	if err != nil {
		return "", err
	}
	return BaseDir(configPath), nil
}

// Logical keys for the entries of Layout.
const (
	KeyAPIFunctions  = "api.functions"
	KeyAPIGraphQL    = "api.graphql"
	KeyWebRoutes     = "web.routes"
	KeyWebPages      = "web.pages"
	KeyWebComponents = "web.components"
)

// LayoutEntry binds a logical key to a slash-separated suffix relative to the
// base directory.
type LayoutEntry struct {
	Key    string
	Suffix string
}

// Layout is the project directory convention, in display order.
var Layout = []LayoutEntry{
	{KeyAPIFunctions, "api/src/functions"},
	{KeyAPIGraphQL, "api/src/graphql"},
	{KeyWebRoutes, "web/src/Routes.js"},
	{KeyWebPages, "web/src/pages/"},
	{KeyWebComponents, "web/src/components"},
}

// APIPaths groups the api side of a project.
type APIPaths struct {
	Functions string `json:"functions" yaml:"functions"`
	GraphQL   string `json:"graphql" yaml:"graphql"`
}

// WebPaths groups the web side of a project.
type WebPaths struct {
	Routes     string `json:"routes" yaml:"routes"`
	Pages      string `json:"pages" yaml:"pages"`
	Components string `json:"components" yaml:"components"`
}

// Paths holds every path derived from a project's base directory.
type Paths struct {
	Base string   `json:"base" yaml:"base"`
	API  APIPaths `json:"api" yaml:"api"`
	Web  WebPaths `json:"web" yaml:"web"`
}

// PathEntry is one flattened (key, path) pair of a Paths value.
type PathEntry struct {
	Key  string `json:"key" yaml:"key"`
	Path string `json:"path" yaml:"path"`
}

// ResolvePaths joins base with every Layout suffix. Nothing is checked on disk.
func ResolvePaths(base string) Paths {
	p := Paths{Base: base}
	for _, e := range Layout {
		v := joinSuffix(base, e.Suffix)
		switch e.Key {
		case KeyAPIFunctions:
			p.API.Functions = v
		case KeyAPIGraphQL:
			p.API.GraphQL = v
		case KeyWebRoutes:
			p.Web.Routes = v
		case KeyWebPages:
			p.Web.Pages = v
		case KeyWebComponents:
			p.Web.Components = v
		}
	}
	return p
}

// GetPaths resolves paths for the project enclosing the working directory.
func GetPaths() (Paths, error) {
	configPath, err := FindConfig()
	if err != nil {
		return Paths{}, err
	}
	return ResolvePaths(BaseDir(configPath)), nil
}

// Lookup returns the path registered under a Layout key, or "base".
func (p Paths) Lookup(key string) (string, bool) {
	if key == "base" {
		return p.Base, true
	}
	for _, e := range p.Entries() {
		if e.Key == key {
			return e.Path, true
		}
	}
	return "", false
}

// Entries flattens p in Layout order, base first.
func (p Paths) Entries() []PathEntry {
	return []PathEntry{
		{"base", p.Base},
		{KeyAPIFunctions, p.API.Functions},
		{KeyAPIGraphQL, p.API.GraphQL},
		{KeyWebRoutes, p.Web.Routes},
		{KeyWebPages, p.Web.Pages},
		{KeyWebComponents, p.Web.Components},
	}
}

// joinSuffix joins like filepath.Join but keeps a trailing separator from suffix.
func joinSuffix(base, suffix string) string {
	joined := filepath.Join(base, filepath.FromSlash(suffix))
	if strings.HasSuffix(suffix, "/") && !strings.HasSuffix(joined, string(filepath.Separator)) {
		joined += string(filepath.Separator)
	}
	return joined
}
