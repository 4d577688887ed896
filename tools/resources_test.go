package tools

import (
	"context"
	"encoding/json"
	"testing"
)

func TestReadSchemaResource(t *testing.T) {
	result, err := ReadSchemaResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("ReadSchemaResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}

	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &schema); err != nil {
		t.Fatalf("Schema resource is not JSON: %v", err)
	}
	if schema["title"] != "Catalog" {
		t.Errorf("Unexpected schema title: %v", schema["title"])
	}
}

func TestReadSampleResource(t *testing.T) {
	result, err := ReadSampleResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("ReadSampleResource failed: %v", err)
	}
	if output := ValidateCatalogContent([]byte(result.Contents[0].Text)); !output.Valid {
		t.Errorf("Sample resource should be a valid catalog: %+v", output.Errors)
	}

	SetDefaultDataProvider(NewMapDataProvider())
	defer ResetDefaultDataProvider()

	if _, err := ReadSampleResource(context.Background(), nil); err == nil {
		t.Error("Expected error when the sample is missing")
	}
}
