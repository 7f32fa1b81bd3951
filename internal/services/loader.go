package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when an input file does not exist
	ErrNotFound = errors.New("file not found")

	// ErrParse is returned when an input file is not well-formed or does not
	// decode into the expected records
	ErrParse = errors.New("parse error")
)

// MissingFieldError reports a record that lacks a required key
type MissingFieldError struct {
	Index int
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("services[%d] (line %d): required field %q is missing", e.Index, e.Line, e.Field)
}

// Unwrap lets errors.Is match ErrParse
func (e *MissingFieldError) Unwrap() error {
	return ErrParse
}

// Source is a loaded but not yet decoded services.yml
type Source struct {
	Path string

	root yaml.Node
	tree any
}

// Load reads and parses the services file at path
func Load(path string) (*Source, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	src := &Source{Path: path}
	if err := yaml.Unmarshal(data, &src.root); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML file %s: %w", ErrParse, path, err)
	}

	if src.root.Kind != 0 {
		if err := src.root.Decode(&src.tree); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML file %s: %w", ErrParse, path, err)
		}
	}

	return src, nil
}

// ReadFile reads path, mapping a missing file to ErrNotFound
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Exists returns ErrNotFound when path does not exist
func Exists(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil
}

// Tree returns the document as generic maps and slices, as needed for
// schema validation. An empty file yields nil.
func (s *Source) Tree() any {
	return s.tree
}

// Decode converts the loaded document into typed records. Records missing a
// required key fail with *MissingFieldError whether or not the document was
// validated first.
func (s *Source) Decode() (*Document, error) {
	doc := &Document{Services: []Record{}}

	node := &s.root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = resolve(node.Content[0])
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrParse, s.Path)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s (line %d): top-level value must be a mapping", ErrParse, s.Path, node.Line)
	}

	list := resolve(lookup(node, "services"))
	if list == nil || list.Tag == "!!null" {
		return doc, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %s (line %d): services must be a sequence", ErrParse, s.Path, list.Line)
	}

	for i, item := range list.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s: services[%d] (line %d) must be a mapping", ErrParse, s.Path, i, item.Line)
		}

		// decoding applies merge keys and aliases, so fields are checked on the result
		var fields map[string]any
		if err := item.Decode(&fields); err != nil {
			return nil, fmt.Errorf("%w: %s: services[%d]: %w", ErrParse, s.Path, i, err)
		}
		for _, field := range RequiredFields {
			if _, ok := fields[field]; !ok {
				return nil, fmt.Errorf("%s: %w", s.Path, &MissingFieldError{Index: i, Field: field, Line: item.Line})
			}
		}

		var record Record
		if err := item.Decode(&record); err != nil {
			return nil, fmt.Errorf("%w: %s: services[%d]: %w", ErrParse, s.Path, i, err)
		}
		doc.Services = append(doc.Services, record)
	}

	return doc, nil
}

// resolve follows alias nodes to the node they refer to
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// lookup returns the value node for key in a mapping node
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
