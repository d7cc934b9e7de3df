// Package jsparse reads the export surface of JavaScript modules with tree-sitter.
package jsparse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
}

// Lazily initialized on first call via sync.Once.
var (
	langToGrammar map[string]*sitter.Language
	grammarsOnce  sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		langToGrammar = map[string]*sitter.Language{
			"javascript": javascript.GetLanguage(),
		}
	})
}

// LanguageForFile returns the canonical language name for a file path based
// on its extension. Returns ("", false) if the extension is not recognized.
func LanguageForFile(path string) (string, bool) {
	lang, ok := extToLanguage[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Exports is the export surface of one module.
type Exports struct {
	HasDefault bool
	// Default is the declared name of the default export, when it has one.
	Default string
	Named   []string
	// HasErrors is set when tree-sitter recovered from syntax errors.
	HasErrors bool
}

// Parse parses src as language lang and collects its top-level exports.
func Parse(ctx context.Context, src []byte, lang string) (Exports, error) {
	initGrammars()
	grammar, ok := langToGrammar[lang]
	if !ok {
		return Exports{}, fmt.Errorf("jsparse: unsupported language %q", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Exports{}, fmt.Errorf("jsparse: tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	ex := Exports{HasErrors: root.HasError()}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() != "export_statement" {
			continue
		}
		collectExport(node, src, &ex)
	}
	return ex, nil
}

func collectExport(node *sitter.Node, src []byte, ex *Exports) {
	isDefault := false
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "default" {
			isDefault = true
			break
		}
	}

	if isDefault {
		ex.HasDefault = true
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			if name := decl.ChildByFieldName("name"); name != nil {
				ex.Default = name.Content(src)
			}
		} else if val := node.ChildByFieldName("value"); val != nil {
			switch val.Type() {
			case "identifier":
				ex.Default = val.Content(src)
			case "function", "function_expression", "class":
				if name := val.ChildByFieldName("name"); name != nil {
					ex.Default = name.Content(src)
				}
			}
		}
		return
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		switch decl.Type() {
		case "lexical_declaration", "variable_declaration":
			for i := 0; i < int(decl.NamedChildCount()); i++ {
				d := decl.NamedChild(i)
				if d.Type() != "variable_declarator" {
					continue
				}
				if name := d.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
					ex.Named = append(ex.Named, name.Content(src))
				}
			}
		default:
			if name := decl.ChildByFieldName("name"); name != nil {
				ex.Named = append(ex.Named, name.Content(src))
			}
		}
		return
	}

	// export { a, b as c }
	for i := 0; i < int(node.NamedChildCount()); i++ {
		clause := node.NamedChild(i)
		if clause.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			spec := clause.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			local := spec.ChildByFieldName("name")
			if local == nil {
				continue
			}
			exported := local.Content(src)
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				exported = alias.Content(src)
			}
			switch {
			case exported != "default":
				ex.Named = append(ex.Named, exported)
			case local.Content(src) != "default":
				ex.HasDefault = true
				ex.Default = local.Content(src)
			default:
				ex.HasDefault = true
			}
		}
	}
}
