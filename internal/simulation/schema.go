package simulation

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchemaURL is the resource name the catalog schema is compiled under.
const catalogSchemaURL = "schema://simulation-catalog.json"

// CatalogSchema is the JSON schema every simulation catalog document must satisfy.
var CatalogSchema = map[string]any{
	"type":     "object",
	"required": []any{"simulations"},
	"properties": map[string]any{
		"simulations": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "steps"},
				"properties": map[string]any{
					"id": map[string]any{
						"type":    "string",
						"pattern": "^[a-z0-9]+(-[a-z0-9]+)*$",
					},
					"title":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []any{"Beginner", "Intermediate", "Advanced"},
					},
					"duration": map[string]any{"type": "string"},
					"icon":     map[string]any{"type": "string"},
					"steps": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"title", "question", "options", "correctIndex"},
							"properties": map[string]any{
								"title":    map[string]any{"type": "string"},
								"content":  map[string]any{"type": "string"},
								"question": map[string]any{"type": "string", "minLength": 1},
								"options": map[string]any{
									"type":     "array",
									"minItems": 2,
									"items":    map[string]any{"type": "string", "minLength": 1},
								},
								"correctIndex": map[string]any{"type": "integer", "minimum": 0},
								"explanation":  map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// catalogSchema compiles CatalogSchema once.
func catalogSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with typed slices.
		b, err := json.Marshal(CatalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal catalog schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(catalogSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateCatalogJSON checks raw catalog JSON against CatalogSchema.
func validateCatalogJSON(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := catalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
