package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/oarkflow/dashconv/internal/services"
)

// SchemaID identifies the generated services schema
const SchemaID = "https://github.com/oarkflow/dashconv/services.schema.json"

// Generate reflects the JSON Schema for services.yml from the typed records
func Generate() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.ExpandedStruct = true

	s := reflector.Reflect(new(services.Document))
	s.ID = SchemaID
	s.Title = "Services"
	s.Description = "Self-hosted services rendered into dashboard configurations"
	// other top-level keys belong to other tools
	s.AdditionalProperties = nil

	return s
}

// GenerateJSON renders Generate as indented JSON with <, > and & kept literal
func GenerateJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Generate(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return unescapeHTML(data), nil
}

// htmlEscapes are the sequences encoding/json emits for HTML-sensitive runes.
// Nested schemas are marshalled by the reflector itself, so an encoder with
// SetEscapeHTML(false) does not reach them.
var htmlEscapes = map[string]byte{
	`\u003c`: '<',
	`\u003e`: '>',
	`\u0026`: '&',
}

// unescapeHTML rewrites HTML escapes in JSON strings back to their runes,
// leaving every other escape sequence untouched
func unescapeHTML(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+6 <= len(data) {
			if r, ok := htmlEscapes[string(data[i:i+6])]; ok {
				out = append(out, r)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// WriteSchema writes the generated schema to path
func WriteSchema(path string) error {
	data, err := GenerateJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
