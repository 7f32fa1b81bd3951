// Package writer serializes dashboard configurations to YAML files.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrWrite is returned when the output file cannot be written
var ErrWrite = errors.New("write error")

const (
	indent   = 2
	filePerm = 0o644
)

// Marshal renders v as a block-style YAML document. Struct fields keep their
// declaration order and non-ASCII text is emitted as is.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteYAML encodes v in memory, then writes it to path in a single call. The
// file is not touched when encoding fails, and missing parent directories are
// not created.
func WriteYAML(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: failed to save file %s: %w", ErrWrite, path, err)
	}

	return nil
}
