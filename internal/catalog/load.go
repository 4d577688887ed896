package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a nested catalog file
type Document struct {
	Name       string `json:"name,omitempty"`
	Version    int    `json:"version,omitempty"`
	Categories []Node `json:"categories"`
}

// Node is one nested catalog item. Nesting defines the parent of each entry.
type Node struct {
	Text     string `json:"text"`
	Related  string `json:"related,omitempty"`
	Kind     Kind   `json:"kind,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Parse validates data against the catalog schema and decodes it
func Parse(data []byte) (*Document, error) {
	issues, err := ValidateSchema(data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, fmt.Errorf("%w: %s: %s (%d issue(s))", ErrInvalidCatalog, issues[0].Path, issues[0].Message, len(issues))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &doc, nil
}

// LoadFile reads and parses a catalog file
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file '%s': %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file '%s': %w", path, err)
	}
	return doc, nil
}

// Entries flattens the document into ingestion order (pre-order, children in file order).
// Missing kinds are inferred: top level is a main category, nodes with children are
// categories, everything else is a keyword.
func (d *Document) Entries() []*Entry {
	var entries []*Entry

	var flatten func(nodes []Node, parent string, depth int)
	flatten = func(nodes []Node, parent string, depth int) {
		for _, node := range nodes {
			entries = append(entries, &Entry{
				Text:    node.Text,
				Parent:  parent,
				Related: node.Related,
				Kind:    inferKind(node, depth),
			})
			flatten(node.Children, node.Text, depth+1)
		}
	}
	flatten(d.Categories, RootKey, 0)

	return entries
}

func inferKind(node Node, depth int) Kind {
	switch {
	case node.Kind != "":
		return node.Kind
	case depth == 0:
		return KindMainCategory
	case len(node.Children) > 0:
		return KindCategory
	default:
		return KindKeyword
	}
}
