/*
Package homer converts services documents into Homer dashboard configuration.
*/
package homer

import (
	"github.com/oarkflow/dashconv/internal/services"
)

const (
	Title    = "My Services"
	Subtitle = "オンプレミスサービス一覧"
	Theme    = "default"

	GroupName = "Services"
	GroupIcon = "fas fa-th"

	// LinkTarget opens every item in the dashboard's own tab
	LinkTarget = "self"
)

// Config is the root of a Homer config.yml
type Config struct {
	Title    string  `yaml:"title"`
	Subtitle string  `yaml:"subtitle"`
	Theme    string  `yaml:"theme"`
	Message  string  `yaml:"message"`
	Links    []Link  `yaml:"links"`
	Services []Group `yaml:"services"`
}

// Link is a header link. None are generated.
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Group is a titled list of items
type Group struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Items []Item `yaml:"items"`
}

// Item is a single service card
type Item struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Logo     string `yaml:"logo,omitempty"`
	Target   string `yaml:"_target"`
}

// Convert nests every record of doc, in order, under the single Services group
func Convert(doc *services.Document) *Config {
	items := make([]Item, 0, len(doc.Services))
	for _, record := range doc.Services {
		items = append(items, Item{
			Name:     record.Name,
			URL:      record.URL,
			Subtitle: record.Description,
			Logo:     record.Image,
			Target:   LinkTarget,
		})
	}

	return &Config{
		Title:    Title,
		Subtitle: Subtitle,
		Theme:    Theme,
		Message:  "",
		Links:    []Link{},
		Services: []Group{{
			Name:  GroupName,
			Icon:  GroupIcon,
			Items: items,
		}},
	}
}

// Target plugs the Homer conversion into the shared pipeline
type Target struct{}

func (Target) Name() string {
	return "Homer"
}

// Convert implements the pipeline target. The count is the number of items,
// not groups.
func (Target) Convert(doc *services.Document) (any, int) {
	cfg := Convert(doc)
	return cfg, len(cfg.Services[0].Items)
}
