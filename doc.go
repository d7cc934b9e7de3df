// Package rwpaths resolves the directory layout of a Redwood project and
// discovers its page modules for route generation.
//
// # Paths
//
// A project is anchored by its redwood.toml file. [FindConfigFrom] walks up
// from a start directory to find it, [BaseDir] takes its directory, and
// [ResolvePaths] joins the base directory with the fixed [Layout] table:
//
//	cfg, err := rwpaths.FindConfigFrom(".")
//	if err != nil { ... }
//	paths := rwpaths.ResolvePaths(rwpaths.BaseDir(cfg))
//	fmt.Println(paths.Web.Pages) // <base>/web/src/pages/
//
// Resolution is string composition only; nothing is checked on disk.
//
// # Pages
//
// Pages follow a directory convention: web/src/pages/Home/Home.js is the
// page Home. A directory without a same-named .js file groups pages, and its
// name prefixes theirs, so pages/Admin/Users/Users.js becomes AdminUsers:
//
//	pages, err := rwpaths.ProcessPagesDir(paths.Web.Pages)
//	// pages[i].ImportStatement == "import AdminUsers from 'src/pages/Admin/Users'"
//
// [Walker] exposes the same walk as a lazy sequence and lets callers replace
// the import statement syntax, either in Go ([WithImportRenderer]) or with a
// Risor script ([WithImportScript]). Generated identifiers are not checked
// for collisions during the walk; use [CheckUnique] when that matters.
//
// [InspectPage] parses a page module with tree-sitter to report whether it
// has the default export a route generator needs, and [WriteManifest]
// records paths and pages into a SQLite file for other tools.
package rwpaths
