package rwpaths

import (
	"context"
	"fmt"
	"os"

	"github.com/jward/rwpaths/internal/jsparse"
)

// PageModule is the export surface of a page's source file.
type PageModule struct {
	Page             Page     `json:"page" yaml:"page"`
	File             string   `json:"file" yaml:"file"`
	HasDefaultExport bool     `json:"hasDefaultExport" yaml:"hasDefaultExport"`
	DefaultExport    string   `json:"defaultExport,omitempty" yaml:"defaultExport,omitempty"`
	NamedExports     []string `json:"namedExports,omitempty" yaml:"namedExports,omitempty"`
	SyntaxErrors     bool     `json:"syntaxErrors,omitempty" yaml:"syntaxErrors,omitempty"`
}

// InspectPage parses the page's source file and reports its exports.
// A route generator can only import pages with a default export.
func InspectPage(ctx context.Context, p Page) (PageModule, error) {
	file := p.SourceFile()
	src, err := os.ReadFile(file)
	if err != nil {
		return PageModule{}, fmt.Errorf("rwpaths: reading page %s: %w", p.Const, err)
	}
	lang, ok := jsparse.LanguageForFile(file)
	if !ok {
		return PageModule{}, fmt.Errorf("rwpaths: no grammar for %s", file)
	}
	ex, err := jsparse.Parse(ctx, src, lang)
	if err != nil {
		return PageModule{}, fmt.Errorf("rwpaths: inspecting %s: %w", file, err)
	}
	return PageModule{
		Page:             p,
		File:             file,
		HasDefaultExport: ex.HasDefault,
		DefaultExport:    ex.Default,
		NamedExports:     ex.Named,
		SyntaxErrors:     ex.HasErrors,
	}, nil
}
