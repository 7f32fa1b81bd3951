/*
Package dashconv converts a declarative list of self-hosted services into the
configuration files expected by dashboard front-ends.

A single services.yml describes every service once:

	services:
	  - name: Wiki
	    description: Docs
	    url: http://wiki.local
	    host: wiki.local
	    category: Tools
	    healthcheck: true

Each converter loads that file, validates it against a JSON Schema, maps the
records into the target dashboard's shape and writes the result as YAML.

# Usage

	heimdall-convert --services data/my-services/services.yml --output heimdall_config.yaml
	homer-convert --validate-only
	homer-convert schema generate scripts/my-services/services.schema.json

Both tools exit with status 1 on any missing file, parse error, schema
violation or write failure.
*/
package dashconv

// Version is the current version of dashconv
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
