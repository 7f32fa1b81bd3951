/*
Package pipeline runs a single services-to-dashboard conversion.
*/
package pipeline

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/oarkflow/dashconv/internal/config"
	"github.com/oarkflow/dashconv/internal/schema"
	"github.com/oarkflow/dashconv/internal/services"
	"github.com/oarkflow/dashconv/internal/writer"
)

// ErrValidationFailed is returned when the services document does not
// conform to the schema
var ErrValidationFailed = errors.New("validation failed")

// Target converts a decoded services document into one dashboard's config
type Target interface {
	// Name is the dashboard name used in messages
	Name() string
	// Convert returns the config to write and the number of services in it
	Convert(doc *services.Document) (any, int)
}

// Result summarizes a run
type Result struct {
	State    State
	Services int
	Output   string
}

// Pipeline moves a conversion through Loading, Validating, Transforming and
// Writing. Any failure ends the run in Failed.
type Pipeline struct {
	options config.Options
	target  Target
	log     *log.Logger
	state   State
}

// New creates a new conversion pipeline
func New(opts config.Options, target Target, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		options: opts,
		target:  target,
		log:     logger,
		state:   Loading,
	}
}

// State returns the state the pipeline is in
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the pipeline once
func (p *Pipeline) Run() (*Result, error) {
	p.log.Infof("Starting %s configuration conversion...", p.target.Name())
	p.log.Info("Paths", "input", p.options.Services, "schema", p.options.Schema, "output", p.options.Output)

	src, doc, err := p.load()
	if err != nil {
		return p.fail(err)
	}

	if p.options.NoValidate {
		p.log.Warn("Skipping validation.")
	} else {
		p.state = Validating
		if err := p.validate(src, doc); err != nil {
			return p.fail(err)
		}
	}

	if p.options.ValidateOnly {
		p.state = Done
		p.log.Info("Validation-only run. No conversion performed.")
		return &Result{State: p.state}, nil
	}

	p.state = Transforming
	p.log.Infof("Converting to %s format...", p.target.Name())
	records, err := src.Decode()
	if err != nil {
		return p.fail(err)
	}
	cfg, count := p.target.Convert(records)

	p.state = Writing
	p.log.Info("Writing configuration file...")
	if err := writer.WriteYAML(p.options.Output, cfg); err != nil {
		return p.fail(err)
	}
	p.log.Infof("Generated %s config: %s", p.target.Name(), p.options.Output)

	p.state = Done
	p.log.Info("Conversion completed!", "services", count, "output", p.options.Output)

	return &Result{State: p.state, Services: count, Output: p.options.Output}, nil
}

// load checks both inputs exist before parsing either. The returned schema
// document is nil when validation is disabled.
func (p *Pipeline) load() (*services.Source, *schema.Document, error) {
	for _, path := range []string{p.options.Services, p.options.Schema} {
		if err := services.Exists(path); err != nil {
			return nil, nil, err
		}
	}

	p.log.Info("Loading services.yml...")
	src, err := services.Load(p.options.Services)
	if err != nil {
		return nil, nil, err
	}

	p.log.Info("Loading JSON Schema...")
	if p.options.NoValidate {
		// the schema is still read and must be JSON, but nothing compiles it
		if _, err := schema.Parse(p.options.Schema); err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	}

	doc, err := schema.Load(p.options.Schema)
	if err != nil {
		return nil, nil, err
	}

	return src, doc, nil
}

func (p *Pipeline) validate(src *services.Source, doc *schema.Document) error {
	p.log.Info("Validating data...")

	err := doc.Validate(src.Tree())
	if err == nil {
		p.log.Info("Data conforms to the schema.")
		return nil
	}

	var violation *schema.ViolationError
	if errors.As(err, &violation) {
		p.log.Error("Validation error", "message", violation.Message, "path", violation.PathString())
	}

	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

func (p *Pipeline) fail(err error) (*Result, error) {
	p.log.Debug("Pipeline failed", "state", p.state)
	p.state = Failed
	return &Result{State: p.state}, err
}
