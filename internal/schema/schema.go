// Package schema provides JSON Schema validation for services documents.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/oarkflow/dashconv/internal/services"
)

// ErrSchemaViolation is returned when a document does not conform to the schema
var ErrSchemaViolation = errors.New("schema violation")

// PathSeparator joins instance path segments in violation reports
const PathSeparator = " -> "

// resourceName is the URL the schema is registered under in the compiler
const resourceName = "services.schema.json"

// ViolationError describes the first violation found in a document
type ViolationError struct {
	Message string
	// Path holds the instance location from the root to the offending value
	Path []string
	// KeywordLocation is the schema keyword that failed
	KeywordLocation string
}

func (e *ViolationError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (path: %s)", e.Message, e.PathString())
}

// PathString renders Path joined by PathSeparator
func (e *ViolationError) PathString() string {
	return strings.Join(e.Path, PathSeparator)
}

// Unwrap lets errors.Is match ErrSchemaViolation
func (e *ViolationError) Unwrap() error {
	return ErrSchemaViolation
}

// Document is a compiled JSON Schema
type Document struct {
	Path     string
	compiled *validator.Schema
}

// Parse reads the JSON Schema at path and checks that it is well-formed JSON
// without compiling it
func Parse(path string) ([]byte, error) {
	data, err := services.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON file %s: %w", services.ErrParse, path, err)
	}
	return data, nil
}

// Load reads, parses and compiles the JSON Schema at path
func Load(path string) (*Document, error) {
	data, err := Parse(path)
	if err != nil {
		return nil, err
	}

	doc, err := Compile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Compile compiles a JSON Schema document held in memory
func Compile(data []byte) (*Document, error) {
	compiler := validator.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: invalid schema: %w", services.ErrParse, err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compile schema: %w", services.ErrParse, err)
	}

	return &Document{compiled: compiled}, nil
}

// Validate checks tree against the schema. Only the first violation in the
// engine's walk order is reported, as a *ViolationError.
func (d *Document) Validate(tree any) error {
	instance, err := normalize(tree)
	if err != nil {
		return err
	}

	err = d.compiled.Validate(instance)
	if err == nil {
		return nil
	}

	var verr *validator.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	leaf := firstLeaf(verr)
	return &ViolationError{
		Message:         leaf.Message,
		Path:            splitPointer(leaf.InstanceLocation),
		KeywordLocation: leaf.KeywordLocation,
	}
}

// normalize converts a decoded YAML tree into the JSON value model the
// validator expects
func normalize(tree any) (any, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: document cannot be represented as JSON: %w", services.ErrParse, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrParse, err)
	}
	return instance, nil
}

// firstLeaf follows the first cause down to the innermost error
func firstLeaf(err *validator.ValidationError) *validator.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// splitPointer turns a JSON pointer such as /services/0/name into its
// unescaped segments
func splitPointer(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}

	parts := strings.Split(pointer, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return parts
}
