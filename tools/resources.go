package tools

import (
	"context"
	"fmt"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	schemaResourceURI = "catalog://schema"
	sampleResourceURI = "catalog://sample"
)

// ReadSchemaResource returns the catalog JSON Schema
func ReadSchemaResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      schemaResourceURI,
			MIMEType: "application/schema+json",
			Text:     string(catalog.Schema()),
		}},
	}, nil
}

// ReadSampleResource returns the embedded sample catalog
func ReadSampleResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := defaultDataProvider.ReadFile(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("resource %s not available: %w", sampleResourceURI, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      sampleResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// RegisterResources registers the catalog format resources
func RegisterResources(server *mcp.Server) error {
	server.AddResource(&mcp.Resource{
		URI:         schemaResourceURI,
		Name:        "catalog-schema",
		Description: "JSON Schema every catalog file must satisfy",
		MIMEType:    "application/schema+json",
	}, ReadSchemaResource)

	server.AddResource(&mcp.Resource{
		URI:         sampleResourceURI,
		Name:        "sample-catalog",
		Description: "Sample catalog shipped with the server",
		MIMEType:    "application/json",
	}, ReadSampleResource)

	return nil
}
