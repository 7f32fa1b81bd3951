/*
Package services loads and decodes the services.yml document shared by all
dashboard converters.
*/
package services

// Document represents the complete services.yml file
type Document struct {
	// Services shown on the dashboards, in display order
	Services []Record `yaml:"services" json:"services" jsonschema:"description=Services shown on the dashboards"`
}

// Record is a single self-hosted service
type Record struct {
	Name        string `yaml:"name" json:"name" jsonschema:"minLength=1,description=Display name of the service"`
	Description string `yaml:"description" json:"description" jsonschema:"description=Short description shown under the name"`
	URL         string `yaml:"url" json:"url" jsonschema:"minLength=1,description=URL the dashboard links to"`
	Host        string `yaml:"host" json:"host" jsonschema:"description=Host the service runs on"`
	Category    string `yaml:"category" json:"category" jsonschema:"description=Category used to group the service"`

	// Label and AliasName are free-form tags; both default to empty
	Label     []string `yaml:"label,omitempty" json:"label,omitempty" jsonschema:"description=Free-form labels"`
	AliasName []string `yaml:"alias-name,omitempty" json:"alias-name,omitempty" jsonschema:"description=Alternative names for the service"`

	External    bool `yaml:"external,omitempty" json:"external,omitempty" jsonschema:"default=false,description=Service is reachable from outside the local network"`
	Healthcheck bool `yaml:"healthcheck,omitempty" json:"healthcheck,omitempty" jsonschema:"default=false,description=Probe <url>/health for liveness"`

	// Image is an icon file name or URL
	Image string `yaml:"image,omitempty" json:"image,omitempty" jsonschema:"description=Icon file name or URL"`
}

// RequiredFields lists the keys every record must carry, in check order
var RequiredFields = []string{"name", "description", "url", "host", "category"}
