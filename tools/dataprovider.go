package tools

// DataProvider gives access to the files built into the binary.
// Tests swap it for a MapDataProvider to exercise broken or missing catalogs.
type DataProvider interface {
	// ReadFile reads the named file, relative to the data root (e.g. "data/catalog.json")
	ReadFile(name string) ([]byte, error)
}
