package store

import (
	"crypto/sha256"
	"fmt"
)

// ComputeManifestHash hashes paths and pages in order. Reordering pages
// changes the hash since walk order is part of the manifest.
func ComputeManifestHash(paths []PathRow, pages []PageRow) string {
	h := sha256.New()
	for _, p := range paths {
		fmt.Fprintf(h, "path:%s:%s\n", p.Key, p.Path)
	}
	for _, p := range pages {
		fmt.Fprintf(h, "page:%s:%s:%s\n", p.Const, p.Path, p.ImportStatement)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
