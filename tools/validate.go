package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Validation error codes
const (
	CodeFileRead           = "FILE_READ_ERROR"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeSchema             = "SCHEMA_VALIDATION_ERROR"
	CodeMalformedHierarchy = "MALFORMED_HIERARCHY"
	CodeDuplicateText      = "DUPLICATE_TEXT"
	CodeNewerVersion       = "NEWER_VERSION"
)

// ValidationError represents a validation error with location
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationWarning represents an accepted but suspicious construct
type ValidationWarning struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidateCatalogInput defines input for validate_catalog tool
type ValidateCatalogInput struct {
	Catalog string `json:"catalog" jsonschema:"Catalog as JSON string or file path"`
}

// ValidateCatalogOutput defines output for validate_catalog tool
type ValidateCatalogOutput struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
	Summary  string              `json:"summary"`
	Entries  int                 `json:"entries"`
}

// isFilePath determines if a string is a file path rather than JSON content
func isFilePath(s string) bool {
	if s == "" {
		return false
	}

	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return false
	}

	// Unix absolute or relative path
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return true
	}

	// Windows absolute path (C:\, D:\, etc.)
	if len(s) >= 3 && s[1] == ':' && (s[2] == '\\' || s[2] == '/') {
		return true
	}

	return strings.HasSuffix(s, ".json") && !strings.Contains(s, "\n")
}

// ValidateCatalog checks a catalog against the schema and the hierarchy rules
func ValidateCatalog(ctx context.Context, req *mcp.CallToolRequest, input ValidateCatalogInput) (*mcp.CallToolResult, ValidateCatalogOutput, error) {
	content := input.Catalog
	if isFilePath(input.Catalog) {
		data, err := os.ReadFile(input.Catalog)
		if err != nil {
			var msg string
			switch {
			case os.IsNotExist(err):
				msg = fmt.Sprintf("Catalog file not found: %s", input.Catalog)
			case os.IsPermission(err):
				msg = fmt.Sprintf("Permission denied reading file: %s", input.Catalog)
			default:
				msg = fmt.Sprintf("Failed to read catalog file '%s': %s", input.Catalog, err.Error())
			}

			output := newValidateOutput()
			output.Errors = append(output.Errors, ValidationError{Path: input.Catalog, Message: msg, Code: CodeFileRead})
			output.Summary = "Catalog file could not be read"
			return nil, output, nil
		}
		content = string(data)
	}

	return nil, ValidateCatalogContent([]byte(content)), nil
}

func newValidateOutput() ValidateCatalogOutput {
	return ValidateCatalogOutput{
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}
}

// ValidateCatalogContent runs every check on a catalog document: JSON syntax,
// the embedded schema, then the hierarchy the document flattens into
func ValidateCatalogContent(data []byte) ValidateCatalogOutput {
	output := newValidateOutput()

	if !json.Valid(data) {
		var probe interface{}
		err := json.Unmarshal(data, &probe)
		output.Errors = append(output.Errors, ValidationError{
			Message: fmt.Sprintf("Invalid JSON: %v", err),
			Code:    CodeInvalidJSON,
		})
		output.Summary = "Catalog has JSON syntax errors"
		return output
	}

	issues, err := catalog.ValidateSchema(data)
	if err != nil {
		output.Errors = append(output.Errors, ValidationError{Message: err.Error(), Code: CodeSchema})
		output.Summary = "Catalog could not be checked against the schema"
		return output
	}
	for _, issue := range issues {
		output.Errors = append(output.Errors, ValidationError{Path: issue.Path, Message: issue.Message, Code: CodeSchema})
	}
	if len(output.Errors) > 0 {
		output.Summary = fmt.Sprintf("Catalog validation failed with %d schema error(s)", len(output.Errors))
		return output
	}

	doc, err := catalog.Parse(data)
	if err != nil {
		output.Errors = append(output.Errors, ValidationError{Message: err.Error(), Code: CodeSchema})
		output.Summary = "Catalog could not be decoded"
		return output
	}

	if doc.Version > catalog.SchemaVersion {
		output.Warnings = append(output.Warnings, ValidationWarning{
			Path:    "$.version",
			Message: fmt.Sprintf("catalog format v%d is newer than supported v%d", doc.Version, catalog.SchemaVersion),
			Code:    CodeNewerVersion,
		})
	}

	entries := doc.Entries()
	output.Entries = len(entries)
	output.Warnings = append(output.Warnings, duplicateWarnings(entries)...)

	if err := catalog.BuildTree(entries).Validate(); err != nil {
		output.Errors = append(output.Errors, ValidationError{Message: err.Error(), Code: CodeMalformedHierarchy})
		output.Summary = "Catalog hierarchy is malformed"
		return output
	}

	output.Valid = true
	output.Summary = fmt.Sprintf("Catalog is valid: %d entries, %d warning(s)", output.Entries, len(output.Warnings))
	return output
}

// duplicateWarnings reports entries sharing a text; the last one wins in the index
func duplicateWarnings(entries []*catalog.Entry) []ValidationWarning {
	var warnings []ValidationWarning
	parents := make(map[string]string, len(entries))

	for _, entry := range entries {
		if parent, ok := parents[entry.Text]; ok {
			warnings = append(warnings, ValidationWarning{
				Path:    entry.Text,
				Message: fmt.Sprintf("%q appears under %q and %q; only the last one is searchable by its own text", entry.Text, parent, entry.Parent),
				Code:    CodeDuplicateText,
			})
		}
		parents[entry.Text] = entry.Parent
	}

	return warnings
}

// RegisterValidationTools registers catalog validation tools with the MCP server
func RegisterValidationTools(server *mcp.Server) error {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "validate_catalog",
			Description: "Validate a catalog (JSON string or file path) against the catalog JSON Schema and check its hierarchy for parent loops. Duplicate entry texts are reported as warnings.",
		},
		ValidateCatalog,
	)

	return nil
}
