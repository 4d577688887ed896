package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/krakend/catalog-search/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	version     = "0.1.0"
	serverName  = "catalog-search"
	description = "MCP server for live filtering of a hierarchical catalog"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// Set up logging to stderr (MCP uses stdout for protocol)
	log.SetOutput(os.Stderr)
	log.Printf("%s v%s starting (%s)...", serverName, version, description)

	server := createMCPServer()

	if err := registerTools(server); err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}
	if err := registerResources(server); err != nil {
		log.Fatalf("Failed to register resources: %v", err)
	}

	log.Printf("✓ Server ready and waiting for connections")

	defer func() {
		if err := tools.CloseCatalog(); err != nil {
			log.Printf("Error closing catalog: %v", err)
		}
	}()

	// Run server with stdio transport
	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// createMCPServer initializes the MCP server
func createMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil, // Default options
	)

	log.Printf("Server initialized: %s v%s", serverName, version)
	return server
}

// registerTools registers all MCP tools
func registerTools(server *mcp.Server) error {
	toolCount := 0

	// Catalog search tools (2 tools)
	if err := tools.RegisterCatalogTools(server); err != nil {
		return fmt.Errorf("failed to register catalog tools: %w", err)
	}
	toolCount += 2

	// Validation tools (1 tool)
	if err := tools.RegisterValidationTools(server); err != nil {
		return fmt.Errorf("failed to register validation tools: %w", err)
	}
	toolCount++

	log.Printf("✓ All tools registered: %d tools (catalog + validation)", toolCount)
	return nil
}

// registerResources registers all MCP resources
func registerResources(server *mcp.Server) error {
	if err := tools.RegisterResources(server); err != nil {
		return fmt.Errorf("failed to register resources: %w", err)
	}

	log.Printf("✓ Resources registered: 2 (catalog schema + sample catalog)")
	return nil
}
