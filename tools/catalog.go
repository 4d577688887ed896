package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/filter"
	"github.com/krakend/catalog-search/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	catalogFile     = "catalog.json"
	embeddedCatalog = "data/catalog.json"

	// Highlight markers used in rendered labels
	highlightOpen  = "[["
	highlightClose = "]]"
)

// Source names for catalogs that do not come from a file
const sourceEmbedded = "embedded"

// SearchCatalogInput defines input for search_catalog tool
type SearchCatalogInput struct {
	Query string `json:"query" jsonschema:"Free-text query. Words are OR-ed and stemmed; an empty query resets the view"`
}

// NodeView is one visible catalog entry
type NodeView struct {
	Text       string       `json:"text"`
	Depth      int          `json:"depth"`
	Kind       catalog.Kind `json:"kind"`
	Expanded   bool         `json:"expanded"`
	Highlights []string     `json:"highlights,omitempty"`
	Label      string       `json:"label"`
}

// SearchCatalogOutput defines output for search_catalog tool
type SearchCatalogOutput struct {
	Query        string     `json:"query"`
	Active       bool       `json:"active"`
	Matches      []string   `json:"matches"`
	VisibleCount int        `json:"visible_count"`
	TotalNodes   int        `json:"total_nodes"`
	Nodes        []NodeView `json:"nodes"`
}

// ReloadCatalogInput defines input for reload_catalog tool
type ReloadCatalogInput struct {
	Path  string `json:"path,omitempty" jsonschema:"Catalog file to load (optional, defaults to catalog.json in the data directory)"`
	Force bool   `json:"force,omitempty" jsonschema:"Reload even if the file has not changed (optional, defaults to false)"`
}

// ReloadCatalogOutput defines output for reload_catalog tool
type ReloadCatalogOutput struct {
	Updated    bool      `json:"updated"`
	Source     string    `json:"source"`
	Entries    int       `json:"entries"`
	LastUpdate time.Time `json:"last_update"`
	Message    string    `json:"message"`
}

// loadedCatalog is a sealed engine plus where it came from
type loadedCatalog struct {
	engine  *filter.Engine
	source  string
	modTime time.Time
}

// catalogHolder manages concurrent access to the active catalog engine
type catalogHolder struct {
	// current holds the active catalog (atomic access for lock-free reads)
	current atomic.Pointer[loadedCatalog]

	// refreshMu prevents concurrent reloads
	refreshMu sync.Mutex

	// wg tracks in-flight searches for graceful cleanup of old engines
	wg sync.WaitGroup
}

var catalogMgr = &catalogHolder{}

// DefaultCatalogPath returns the catalog file in the data directory
func DefaultCatalogPath() string {
	return filepath.Join(dataDir, catalogFile)
}

// LoadCatalog reads, validates and seals a catalog file into an engine
func LoadCatalog(path string) (*filter.Engine, error) {
	doc, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return sealDocument(doc)
}

// LoadEmbeddedCatalog seals the sample catalog built into the binary
func LoadEmbeddedCatalog() (*filter.Engine, error) {
	data, err := defaultDataProvider.ReadFile(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}

	doc, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return sealDocument(doc)
}

func sealDocument(doc *catalog.Document) (*filter.Engine, error) {
	engine, err := render.Seal(doc.Entries())
	if err != nil {
		return nil, fmt.Errorf("failed to seal catalog: %w", err)
	}
	return engine, nil
}

// InitializeCatalog loads the active catalog.
// Priority: catalog.json in the data directory > embedded sample (extracted there on first use)
func InitializeCatalog() error {
	startTime := time.Now()
	log.Printf("Initializing catalog...")

	catalogMgr.refreshMu.Lock()
	defer catalogMgr.refreshMu.Unlock()

	if catalogMgr.current.Load() != nil {
		return nil
	}

	path := DefaultCatalogPath()

	// Strategy 1: local catalog (from a previous extraction or user edits)
	if info, err := os.Stat(path); err == nil {
		engine, err := LoadCatalog(path)
		if err == nil {
			catalogMgr.current.Store(&loadedCatalog{engine: engine, source: path, modTime: info.ModTime()})
			log.Printf("✓ Catalog initialized (%d entries, %s) in %v",
				len(engine.Entries()), path, time.Since(startTime).Round(time.Millisecond))
			return nil
		}
		log.Printf("Warning: Local catalog unusable, falling back to embedded catalog: %v", err)
	} else {
		// Strategy 2: extract the embedded sample so it can be edited and reloaded
		if err := extractEmbeddedCatalog(path); err != nil {
			log.Printf("Warning: Failed to extract embedded catalog: %v", err)
		}
	}

	engine, err := LoadEmbeddedCatalog()
	if err != nil {
		return err
	}
	catalogMgr.current.Store(&loadedCatalog{engine: engine, source: sourceEmbedded, modTime: startTime})

	log.Printf("✓ Catalog initialized (%d entries, embedded) in %v",
		len(engine.Entries()), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// extractEmbeddedCatalog writes the embedded catalog to path
func extractEmbeddedCatalog(path string) error {
	data, err := defaultDataProvider.ReadFile(embeddedCatalog)
	if err != nil {
		return fmt.Errorf("failed to read embedded catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Write to a temp file first so a concurrent reader never sees a partial catalog
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename catalog: %w", err)
	}

	log.Printf("✓ Embedded catalog extracted to %s", path)
	return nil
}

// swapCatalog makes next the active catalog and closes the previous engine once
// the searches still using it have finished
func swapCatalog(next *loadedCatalog) {
	holder := catalogMgr
	old := holder.current.Swap(next)
	if old == nil {
		return
	}

	go func(old *loadedCatalog) {
		waitStart := time.Now()
		holder.wg.Wait()

		if err := old.engine.Close(); err != nil {
			log.Printf("Warning: Error closing old catalog index: %v", err)
			return
		}
		log.Printf("✓ Old catalog closed (waited %v)", time.Since(waitStart).Round(time.Millisecond))
	}(old)
}

// SearchCatalog filters the active catalog and returns the visible tree
func SearchCatalog(ctx context.Context, req *mcp.CallToolRequest, input SearchCatalogInput) (*mcp.CallToolResult, SearchCatalogOutput, error) {
	// Track in-flight searches for graceful cleanup (MUST be before Load)
	catalogMgr.wg.Add(1)
	defer catalogMgr.wg.Done()

	current := catalogMgr.current.Load()
	if current == nil {
		log.Printf("Catalog not initialized, initializing now...")
		if err := InitializeCatalog(); err != nil {
			return nil, SearchCatalogOutput{}, fmt.Errorf("failed to initialize catalog: %w", err)
		}
		current = catalogMgr.current.Load()
		if current == nil {
			return nil, SearchCatalogOutput{}, errors.New("catalog still nil after initialization")
		}
	}

	view, err := render.Search(current.engine, input.Query)
	if err != nil {
		return nil, SearchCatalogOutput{}, err
	}

	return nil, newSearchOutput(input.Query, view), nil
}

func newSearchOutput(query string, view render.View) SearchCatalogOutput {
	output := SearchCatalogOutput{
		Query:        query,
		Active:       view.Result.Active,
		Matches:      make([]string, 0, len(view.Result.Matches)),
		VisibleCount: len(view.Lines),
		TotalNodes:   view.Total,
		Nodes:        make([]NodeView, 0, len(view.Lines)),
	}

	for text := range view.Result.Matches {
		output.Matches = append(output.Matches, text)
	}
	sort.Strings(output.Matches)

	for _, line := range view.Lines {
		output.Nodes = append(output.Nodes, NodeView{
			Text:       line.Text,
			Depth:      line.Depth,
			Kind:       line.Kind,
			Expanded:   line.Expanded,
			Highlights: line.Highlights,
			Label:      line.Label(highlightOpen, highlightClose),
		})
	}

	return output
}

// ReloadCatalog loads a catalog file and swaps it in for new searches
func ReloadCatalog(ctx context.Context, req *mcp.CallToolRequest, input ReloadCatalogInput) (*mcp.CallToolResult, ReloadCatalogOutput, error) {
	path := input.Path
	if path == "" {
		path = DefaultCatalogPath()
	}
	output := ReloadCatalogOutput{Source: path}

	info, err := os.Stat(path)
	if err != nil {
		return nil, output, fmt.Errorf("catalog file '%s' not available: %w", path, err)
	}

	catalogMgr.refreshMu.Lock()
	defer catalogMgr.refreshMu.Unlock()

	if current := catalogMgr.current.Load(); current != nil && !input.Force &&
		current.source == path && !info.ModTime().After(current.modTime) {
		output.Entries = len(current.engine.Entries())
		output.LastUpdate = current.modTime
		output.Message = fmt.Sprintf("Catalog unchanged (last updated: %s)", current.modTime.Format(time.RFC3339))
		return nil, output, nil
	}

	startTime := time.Now()
	engine, err := LoadCatalog(path)
	if err != nil {
		return nil, output, fmt.Errorf("reload failed: %w", err)
	}

	swapCatalog(&loadedCatalog{engine: engine, source: path, modTime: info.ModTime()})

	output.Updated = true
	output.Entries = len(engine.Entries())
	output.LastUpdate = info.ModTime()
	output.Message = fmt.Sprintf("Catalog reloaded successfully, %d entries in %v",
		output.Entries, time.Since(startTime).Round(time.Millisecond))
	log.Printf("✓ %s", output.Message)

	return nil, output, nil
}

// RegisterCatalogTools registers catalog search tools
func RegisterCatalogTools(server *mcp.Server) error {
	if err := InitializeCatalog(); err != nil {
		log.Printf("Warning: Catalog initialization failed: %v", err)
		log.Printf("Catalog will attempt to initialize on first use")
	}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_catalog",
			Description: "Filter the catalog tree with a free-text query. Matching entries keep their ancestors visible, a matching category reveals its whole subtree, and matched words are returned highlighted as [[word]]. An empty query shows everything.",
		},
		SearchCatalog,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "reload_catalog",
			Description: "Load a catalog JSON file (defaults to catalog.json in the data directory) and swap it in atomically. Unchanged files are skipped unless force is set.",
		},
		ReloadCatalog,
	)

	return nil
}

// CloseCatalog closes the active catalog after in-flight searches finish
func CloseCatalog() error {
	current := catalogMgr.current.Swap(nil)
	if current == nil {
		return nil
	}

	log.Printf("Waiting for in-flight searches to complete before closing...")
	catalogMgr.wg.Wait()

	if err := current.engine.Close(); err != nil {
		log.Printf("Error closing catalog index: %v", err)
		return err
	}
	log.Printf("✓ Catalog closed successfully")
	return nil
}
