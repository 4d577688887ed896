package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://catalog-search.local/catalog.schema.json"

//go:embed schema.json
var schemaContent []byte

var (
	compiledSchema *jsonschema.Schema
	compileErr     error
	compileOnce    sync.Once
)

// Issue is a single schema violation with its JSON path
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Schema returns the raw embedded catalog JSON Schema
func Schema() []byte {
	return schemaContent
}

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var schemaDoc interface{}
		if err := json.Unmarshal(schemaContent, &schemaDoc); err != nil {
			compileErr = fmt.Errorf("failed to parse catalog schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
			compileErr = fmt.Errorf("failed to add catalog schema: %w", err)
			return
		}

		compiledSchema, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile catalog schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateSchema checks a catalog document against the embedded schema.
// A nil slice means the document is valid; the error is reserved for unparseable input.
func ValidateSchema(data []byte) ([]Issue, error) {
	schema, err := catalogSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return schemaIssues(validationErr), nil
		}
		return []Issue{{Path: "$", Message: err.Error()}}, nil
	}

	return nil, nil
}

// schemaIssues flattens the leaves of a jsonschema error tree
func schemaIssues(validationErr *jsonschema.ValidationError) []Issue {
	if len(validationErr.Causes) == 0 {
		path := "$"
		if len(validationErr.InstanceLocation) > 0 {
			path = "$." + strings.Join(validationErr.InstanceLocation, ".")
		}
		return []Issue{{Path: path, Message: validationErr.Error()}}
	}

	var issues []Issue
	for _, cause := range validationErr.Causes {
		issues = append(issues, schemaIssues(cause)...)
	}
	return issues
}
