package catalog

// Kinds of catalog entries
const (
	// KindMainCategory is a top-level category
	KindMainCategory Kind = "main-category"

	// KindCategory is a nested category owning a collapsible child list
	KindCategory Kind = "category"

	// KindKeyword is a leaf entry
	KindKeyword Kind = "keyword"
)

// RootKey is the synthetic root of every tree. Top-level entries use it as parent.
const RootKey = ""

// SchemaVersion increments when the catalog file format changes
// v1: nested categories with optional related text and kind
const SchemaVersion = 1
