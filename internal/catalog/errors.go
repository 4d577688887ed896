package catalog

import "errors"

var (
	// ErrMalformedHierarchy is returned when parent references form a cycle
	ErrMalformedHierarchy = errors.New("malformed hierarchy")

	// ErrEmptyText is returned for entries without text, which is reserved for the root
	ErrEmptyText = errors.New("entry text is empty")

	// ErrInvalidCatalog is returned when a catalog document fails schema validation
	ErrInvalidCatalog = errors.New("invalid catalog")
)
