package tools

import (
	"embed"
)

// The sample catalog ships with the binary so the server works without any
// file on disk; it is also the schema reference for hand-written catalogs.
//
//go:embed data/catalog.json
var embeddedFS embed.FS

// embeddedDataProvider implements DataProvider using embed.FS
type embeddedDataProvider struct {
	fs embed.FS
}

// NewEmbeddedDataProvider creates a production DataProvider that uses embedded files.
func NewEmbeddedDataProvider() DataProvider {
	return &embeddedDataProvider{fs: embeddedFS}
}

func (p *embeddedDataProvider) ReadFile(name string) ([]byte, error) {
	return p.fs.ReadFile(name)
}

// Default provider used by package-level functions
var defaultDataProvider DataProvider = NewEmbeddedDataProvider()
