package catalog

// Kind determines whether an entry owns a collapsible child region
type Kind string

// IsCategoryLike reports whether entries of this kind own a child region
func (k Kind) IsCategoryLike() bool {
	return k == KindMainCategory || k == KindCategory
}

// Entry represents one catalog item
type Entry struct {
	Text    string `json:"text"`              // Identity key and display label source
	Parent  string `json:"parent"`            // Text of the containing entry, RootKey for top-level
	Related string `json:"related,omitempty"` // Searchable but never displayed
	Kind    Kind   `json:"kind"`

	CleanText string `json:"clean_text,omitempty"` // Normalized Text
	Keywords  string `json:"keywords,omitempty"`   // CleanText plus normalized Related, the indexed field

	// Proxy is the render handle supplied by the rendering collaborator.
	// Nil for entries that are not rendered.
	Proxy Proxy `json:"-"`
}

// Container is the collapsible child region of a category-like entry
type Container interface {
	Show()
	Hide()
}

// Proxy is the capability the rendering collaborator provides for each entry
type Proxy interface {
	Show()
	Hide()

	// IsCategoryLike reports whether the entry owns a collapsible child region
	IsCategoryLike() bool

	// ChildContainer returns the child region, or nil when there is none
	ChildContainer() Container

	// MarkHighlighted marks every occurrence of word in the displayed label
	MarkHighlighted(word string)

	// ClearHighlights removes every highlight marker from the label
	ClearHighlights()
}
