package main

import "github.com/jward/rwpaths"

// CLIResult is the top-level envelope for all commands.
type CLIResult struct {
	Command    string `json:"command" yaml:"command"`
	Results    any    `json:"results" yaml:"results"`
	TotalCount *int   `json:"total_count,omitempty" yaml:"total_count,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CLIPage is a JSON-friendly page descriptor.
type CLIPage struct {
	Const           string `json:"const" yaml:"const"`
	Path            string `json:"path" yaml:"path"`
	ImportStatement string `json:"importStatement" yaml:"importStatement"`
}

// CLICheckReport lists pages a route generator would trip over.
type CLICheckReport struct {
	Pages          int                 `json:"pages" yaml:"pages"`
	MissingDefault []CLIPage           `json:"missing_default,omitempty" yaml:"missing_default,omitempty"`
	SyntaxErrors   []CLIPage           `json:"syntax_errors,omitempty" yaml:"syntax_errors,omitempty"`
	Duplicates     map[string][]string `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// OK reports whether the check found nothing.
func (r CLICheckReport) OK() bool {
	return len(r.MissingDefault) == 0 && len(r.SyntaxErrors) == 0 && len(r.Duplicates) == 0
}

// CLIExport summarizes an export run.
type CLIExport struct {
	Database string `json:"database" yaml:"database"`
	Pages    int    `json:"pages" yaml:"pages"`
	Changed  bool   `json:"changed" yaml:"changed"`
}

func toCLIPage(p rwpaths.Page) CLIPage {
	return CLIPage{Const: p.Const, Path: p.Path, ImportStatement: p.ImportStatement}
}

func toCLIPages(pages []rwpaths.Page) []CLIPage {
	out := make([]CLIPage, len(pages))
	for i, p := range pages {
		out[i] = toCLIPage(p)
	}
	return out
}
