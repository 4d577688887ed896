package tools

import (
	"io/fs"
)

// MapDataProvider implements DataProvider over an in-memory map
type MapDataProvider struct {
	files map[string][]byte
}

// NewMapDataProvider creates an empty provider
func NewMapDataProvider() *MapDataProvider {
	return &MapDataProvider{
		files: make(map[string][]byte),
	}
}

// AddFile adds or replaces a file
func (m *MapDataProvider) AddFile(name string, content []byte) {
	m.files[name] = content
}

// ReadFile returns fs.ErrNotExist for unknown names
func (m *MapDataProvider) ReadFile(name string) ([]byte, error) {
	content, exists := m.files[name]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return content, nil
}

// SetDefaultDataProvider sets the default data provider for the package.
// This is useful for testing to inject a mock provider.
func SetDefaultDataProvider(provider DataProvider) {
	defaultDataProvider = provider
}

// ResetDefaultDataProvider resets the default provider to use embedded data.
func ResetDefaultDataProvider() {
	defaultDataProvider = NewEmbeddedDataProvider()
}
