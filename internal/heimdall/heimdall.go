/*
Package heimdall converts services documents into Heimdall dashboard configuration.
*/
package heimdall

import (
	"strings"

	"github.com/oarkflow/dashconv/internal/services"
)

const (
	// SchemaVersion is the Heimdall config format version
	SchemaVersion = "1.0"

	DashboardName        = "My Services Dashboard"
	DashboardDescription = "オンプレミスサービス一覧"

	healthPath = "health"
)

// Config is the root of a Heimdall config file
type Config struct {
	Version     string    `yaml:"version"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Services    []Service `yaml:"services"`
}

// Service is a single dashboard entry
type Service struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	URL         string      `yaml:"url"`
	Host        string      `yaml:"host"`
	Category    string      `yaml:"category"`
	Labels      []string    `yaml:"labels"`
	Aliases     []string    `yaml:"aliases"`
	External    bool        `yaml:"external"`
	Healthcheck Healthcheck `yaml:"healthcheck"`
	Icon        string      `yaml:"icon,omitempty"`
}

// Healthcheck configures liveness probing. URL is nil when disabled and
// renders as null.
type Healthcheck struct {
	Enabled bool    `yaml:"enabled"`
	URL     *string `yaml:"url"`
}

// Convert maps every record of doc to a Heimdall service, in order
func Convert(doc *services.Document) *Config {
	cfg := &Config{
		Version:     SchemaVersion,
		Name:        DashboardName,
		Description: DashboardDescription,
		Services:    make([]Service, 0, len(doc.Services)),
	}

	for _, record := range doc.Services {
		cfg.Services = append(cfg.Services, convertRecord(record))
	}

	return cfg
}

func convertRecord(record services.Record) Service {
	svc := Service{
		Name:        record.Name,
		Description: record.Description,
		URL:         record.URL,
		Host:        record.Host,
		Category:    record.Category,
		Labels:      orEmpty(record.Label),
		Aliases:     orEmpty(record.AliasName),
		External:    record.External,
		Healthcheck: Healthcheck{Enabled: record.Healthcheck},
		Icon:        record.Image,
	}

	if record.Healthcheck {
		url := HealthcheckURL(record.URL)
		svc.Healthcheck.URL = &url
	}

	return svc
}

// HealthcheckURL appends the health path to base without doubling the slash
func HealthcheckURL(base string) string {
	if strings.HasSuffix(base, "/") {
		return base + healthPath
	}
	return base + "/" + healthPath
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Target plugs the Heimdall conversion into the shared pipeline
type Target struct{}

// Name returns the dashboard name used in messages
func (Target) Name() string {
	return "Heimdall"
}

// Convert implements the pipeline target, returning the config and the
// number of services it holds
func (Target) Convert(doc *services.Document) (any, int) {
	cfg := Convert(doc)
	return cfg, len(cfg.Services)
}
