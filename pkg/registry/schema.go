package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// ValidateSchemaDocument checks that a user-edited node schema is itself a
// loadable JSON Schema document before it is saved. Payload data validation
// happens on the execution backend; this only guards the editor against
// persisting a schema the backend cannot compile.
func ValidateSchemaDocument(schema *models.Schema) error {
	if schema == nil {
		return nil
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	loader := gojsonschema.NewBytesLoader(raw)

	if _, err := gojsonschema.NewSchema(loader); err != nil {
		return fmt.Errorf("invalid schema document: %w", err)
	}

	return nil
}

// ValidateAgainstSchema validates sample data against a node schema. Used by
// the API to sanity-check example payloads supplied while editing.
func ValidateAgainstSchema(data any, schema *models.Schema) error {
	if schema == nil {
		return nil
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(raw), gojsonschema.NewGoLoader(data))
	if err != nil {
		return err
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			msgs = append(msgs, resultError.String())
		}

		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	return nil
}
