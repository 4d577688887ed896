package search

import (
	"fmt"
	"log"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/krakend/catalog-search/internal/catalog"
)

// BatchSize is the number of entries submitted per index batch
const BatchSize = 100

// Index abstracts the stemmed entry index.
// This allows the filter passes to be tested with mocks.
type Index interface {
	// Lookup returns the texts of entries whose keywords match token
	Lookup(token string) ([]string, error)

	// Canonical returns the stemmed form of a single word, or "" for stop words
	Canonical(word string) string

	// Analyze runs text through the indexing pipeline
	Analyze(text string) []string

	// DocCount returns the number of distinct entries in the index
	DocCount() (uint64, error)

	// Close closes the index
	Close() error
}

// document is what bleve indexes for each entry
type document struct {
	Keywords string `json:"keywords"`
}

// BleveIndex is an in-memory bleve index over entry keywords keyed by entry text
type BleveIndex struct {
	index   bleve.Index
	mapping *mapping.IndexMappingImpl
	size    int
}

// New builds an index from enhanced entries. Entries sharing a text overwrite
// each other; the last one wins.
func New(entries []*catalog.Entry) (*BleveIndex, error) {
	startTime := time.Now()

	indexMapping, err := NewMapping()
	if err != nil {
		return nil, err
	}

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	batch := index.NewBatch()
	for i, entry := range entries {
		if err := batch.Index(entry.Text, document{Keywords: entry.Keywords}); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to add entry %q to batch: %w", entry.Text, err)
		}

		// Submit batch every BatchSize entries
		if (i+1)%BatchSize == 0 {
			if err := index.Batch(batch); err != nil {
				index.Close()
				return nil, fmt.Errorf("failed to index batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	// Submit remaining
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index final batch: %w", err)
		}
	}

	count, err := index.DocCount()
	if err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to count indexed entries: %w", err)
	}

	log.Printf("✓ Indexed %d entries (%d distinct) in %v", len(entries), count, time.Since(startTime).Round(time.Millisecond))

	return &BleveIndex{
		index:   index,
		mapping: indexMapping,
		size:    int(count),
	}, nil
}

// Lookup returns the texts of every entry whose keywords share a stem with token
func (b *BleveIndex) Lookup(token string) ([]string, error) {
	if b.size == 0 {
		return nil, nil
	}

	query := bleve.NewMatchQuery(token)
	query.SetField(KeywordsField)
	query.Analyzer = AnalyzerName

	req := bleve.NewSearchRequestOptions(query, b.size, 0, false)
	res, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %q failed: %w", token, err)
	}

	refs := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		refs = append(refs, hit.ID)
	}
	return refs, nil
}

// Analyze returns the terms the index pipeline produces for text
func (b *BleveIndex) Analyze(text string) []string {
	tokens, err := b.mapping.AnalyzeText(AnalyzerName, []byte(text))
	if err != nil {
		log.Printf("Warning: failed to analyze %q: %v", text, err)
		return nil
	}

	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		terms = append(terms, string(token.Term))
	}
	return terms
}

// Canonical returns the first term of word after analysis
func (b *BleveIndex) Canonical(word string) string {
	terms := b.Analyze(word)
	if len(terms) == 0 {
		return ""
	}
	return terms[0]
}

// DocCount returns the number of distinct entries
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the underlying bleve index
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
