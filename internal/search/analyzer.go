package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/kljensen/snowball/english"
)

const (
	// AnalyzerName is the analyzer shared by indexing, lookups and highlighting
	AnalyzerName = "catalog"

	// TokenizerName splits text into the same words as catalog.Words
	TokenizerName = "catalog_words"

	// SnowballFilterName is the registered name of the English stemming filter
	SnowballFilterName = "snowball_english"

	// KeywordsField is the single indexed field
	KeywordsField = "keywords"

	// DocType is the document mapping used for every entry
	DocType = "entry"
)

func init() {
	registry.RegisterTokenFilter(SnowballFilterName, NewSnowballFilter)
}

// SnowballFilter reduces each token to its Snowball English stem.
// Example: "running" -> "run", "apples" -> "appl"
type SnowballFilter struct{}

// NewSnowballFilter creates a new SnowballFilter. The config and cache
// parameters are required by the Bleve registry interface.
func NewSnowballFilter(config map[string]interface{}, cache *registry.Cache) (analysis.TokenFilter, error) {
	return &SnowballFilter{}, nil
}

// Filter stems every non-keyword token in place
func (f *SnowballFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	for _, token := range input {
		if token.KeyWord {
			continue
		}
		token.Term = []byte(english.Stem(string(token.Term), false))
	}
	return input
}

// NewMapping builds the index mapping: one text field analyzed by the catalog
// analyzer (word tokenizer, lowercase, English stop words, Snowball stemmer)
func NewMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomTokenizer(TokenizerName, map[string]interface{}{
		"type":   regexp.Name,
		"regexp": catalog.WordPattern,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add tokenizer: %w", err)
	}

	err = indexMapping.AddCustomAnalyzer(AnalyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     TokenizerName,
		"token_filters": []string{lowercase.Name, en.StopName, SnowballFilterName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add analyzer: %w", err)
	}

	keywordsField := bleve.NewTextFieldMapping()
	keywordsField.Analyzer = AnalyzerName
	keywordsField.Store = false
	keywordsField.IncludeInAll = false
	keywordsField.IncludeTermVectors = false

	entryMapping := bleve.NewDocumentMapping()
	entryMapping.Dynamic = false
	entryMapping.AddFieldMappingsAt(KeywordsField, keywordsField)

	indexMapping.AddDocumentMapping(DocType, entryMapping)
	indexMapping.DefaultType = DocType
	indexMapping.DefaultAnalyzer = AnalyzerName

	return indexMapping, nil
}
