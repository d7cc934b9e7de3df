// Package scripts bundles the Risor import style scripts.
package scripts

import (
	"embed"
	"io/fs"
)

// FS holds imports/*.risor and the helper modules under lib/.
//
//go:embed imports/*.risor lib/*.risor
var FS embed.FS

// Lib returns the helper modules that bundled styles import, rooted so that
// "import quote" resolves lib/quote.risor.
func Lib() fs.FS {
	sub, err := fs.Sub(FS, "lib")
	if err != nil {
		panic(err)
	}
	return sub
}
