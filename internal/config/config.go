/*
Package config resolves the paths and switches a converter runs with.
*/
package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/dashconv/internal/services"
)

// Supported conversion targets
const (
	TargetHeimdall = "heimdall"
	TargetHomer    = "homer"
)

const (
	DefaultServicesPath = "data/my-services/services.yml"
	DefaultSchemaPath   = "scripts/my-services/services.schema.json"
)

var defaultOutputs = map[string]string{
	TargetHeimdall: "heimdall_config.yaml",
	TargetHomer:    "data/my-services/homer_config.yml",
}

var ErrUnknownTarget = errors.New("unknown target")

// Options controls a single converter run
type Options struct {
	Services     string
	Schema       string
	Output       string
	NoValidate   bool
	ValidateOnly bool
}

// File is the optional config file shared by all converters
type File struct {
	Services string     `yaml:"services,omitempty"`
	Schema   string     `yaml:"schema,omitempty"`
	Heimdall TargetFile `yaml:"heimdall,omitempty"`
	Homer    TargetFile `yaml:"homer,omitempty"`
}

// TargetFile holds per-target settings
type TargetFile struct {
	Output string `yaml:"output,omitempty"`
}

// Targets lists the supported conversion targets
func Targets() []string {
	return []string{TargetHeimdall, TargetHomer}
}

// Defaults returns the built-in options for target
func Defaults(target string) (Options, error) {
	output, ok := defaultOutputs[target]
	if !ok {
		return Options{}, fmt.Errorf("%w %q (valid: %v)", ErrUnknownTarget, target, Targets())
	}

	return Options{
		Services: DefaultServicesPath,
		Schema:   DefaultSchemaPath,
		Output:   output,
	}, nil
}

// LoadFile loads a config file from path
func LoadFile(path string) (*File, error) {
	data, err := services.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %w", services.ErrParse, path, err)
	}

	return &f, nil
}

// Options returns the settings f provides for target
func (f *File) Options(target string) Options {
	opts := Options{
		Services: f.Services,
		Schema:   f.Schema,
	}

	switch target {
	case TargetHeimdall:
		opts.Output = f.Heimdall.Output
	case TargetHomer:
		opts.Output = f.Homer.Output
	}

	return opts
}

// Resolve fills the empty fields of flags from the config file at
// configPath (if any), then from the target defaults
func Resolve(target string, flags Options, configPath string) (Options, error) {
	defaults, err := Defaults(target)
	if err != nil {
		return Options{}, err
	}

	opts := flags

	if configPath != "" {
		f, err := LoadFile(configPath)
		if err != nil {
			return Options{}, err
		}

		if err := mergo.Merge(&opts, f.Options(target)); err != nil {
			return Options{}, fmt.Errorf("failed to merge config file %s: %w", configPath, err)
		}
	}

	if err := mergo.Merge(&opts, defaults); err != nil {
		return Options{}, fmt.Errorf("failed to merge defaults: %w", err)
	}

	return opts, nil
}
