package store

const metaManifestHash = "manifest_hash"

// PathRow is one row of the paths table.
type PathRow struct {
	Key  string
	Path string
}

// PageRow is one row of the pages table.
type PageRow struct {
	Const           string
	Path            string
	ImportStatement string
}
