package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/dashconv/internal/config"
	"github.com/oarkflow/dashconv/internal/schema"
	"github.com/oarkflow/dashconv/internal/services"
)

const wikiServices = `services:
  - name: Wiki
    description: Docs
    url: http://wiki.local
    host: wiki.local
    category: Tools
    healthcheck: true
`

func execute(t *testing.T, target string, args ...string) (string, string, error) {
	t.Helper()
	rootCmd, err := newRootCmd(target)
	require.NoError(t, err)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err = run(rootCmd)
	return stdout.String(), stderr.String(), err
}

func inputs(t *testing.T, content string) (dir, servicesPath, schemaPath string) {
	t.Helper()
	dir = t.TempDir()
	servicesPath = filepath.Join(dir, "services.yml")
	schemaPath = filepath.Join(dir, "services.schema.json")
	require.NoError(t, os.WriteFile(servicesPath, []byte(content), 0o644))
	require.NoError(t, schema.WriteSchema(schemaPath))
	return dir, servicesPath, schemaPath
}

func TestRoot_Heimdall(t *testing.T) {
	dir, servicesPath, schemaPath := inputs(t, wikiServices)
	output := filepath.Join(dir, "heimdall.yaml")

	_, stderr, err := execute(t, config.TargetHeimdall,
		"--services", servicesPath, "--schema", schemaPath, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Generated Heimdall config")
	assert.Contains(t, stderr, output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	svc := out["services"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"enabled": true, "url": "http://wiki.local/health"}, svc["healthcheck"])
	assert.Equal(t, []any{}, svc["labels"])
	assert.Equal(t, []any{}, svc["aliases"])
	assert.Equal(t, false, svc["external"])
	assert.NotContains(t, svc, "icon")
}

func TestRoot_Homer(t *testing.T) {
	dir, servicesPath, schemaPath := inputs(t, wikiServices)
	output := filepath.Join(dir, "homer.yml")

	_, _, err := execute(t, config.TargetHomer,
		"--services", servicesPath, "--schema", schemaPath, "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "_target: self")
	assert.Contains(t, string(data), "subtitle: Docs")
}

func TestRoot_ValidateOnly(t *testing.T) {
	dir, servicesPath, schemaPath := inputs(t, wikiServices)
	output := filepath.Join(dir, "out.yaml")

	_, _, err := execute(t, config.TargetHeimdall,
		"--services", servicesPath, "--schema", schemaPath, "--output", output, "--validate-only")
	require.NoError(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_ValidationFailure(t *testing.T) {
	dir, servicesPath, schemaPath := inputs(t, "services:\n  - url: http://x\n")
	output := filepath.Join(dir, "out.yaml")

	_, stderr, err := execute(t, config.TargetHomer,
		"--services", servicesPath, "--schema", schemaPath, "--output", output)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSchemaViolation)
	assert.Contains(t, stderr, "Validation error")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_ErrorsReportedOnce(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
	}{
		{name: "default level"},
		{name: "quiet", extra: []string{"--quiet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, servicesPath, schemaPath := inputs(t, "services:\n  - url: http://x\n")
			args := append([]string{
				"--services", servicesPath, "--schema", schemaPath,
				"--output", filepath.Join(dir, "out.yaml"),
			}, tt.extra...)

			_, stderr, err := execute(t, config.TargetHeimdall, args...)
			require.Error(t, err)

			var violation *schema.ViolationError
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, 1, strings.Count(stderr, violation.Message), stderr)
			assert.Equal(t, 1, strings.Count(stderr, "Validation failed. Aborting."), stderr)
		})
	}
}

func TestRoot_QuietStillReportsErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.yml")

	_, stderr, err := execute(t, config.TargetHomer, "--quiet",
		"--services", missing, "--schema", filepath.Join(dir, "none.json"))
	require.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, 1, strings.Count(stderr, missing), stderr)
	assert.NotContains(t, stderr, "Starting")
}

func TestRoot_FlagErrorReported(t *testing.T) {
	_, stderr, err := execute(t, config.TargetHomer, "--bogus")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown flag: --bogus")
}

func TestRoot_ConfigFile(t *testing.T) {
	dir, servicesPath, schemaPath := inputs(t, wikiServices)
	output := filepath.Join(dir, "from-config.yml")

	cfg, err := yaml.Marshal(config.File{
		Services: servicesPath,
		Schema:   schemaPath,
		Homer:    config.TargetFile{Output: output},
	})
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, "dashconv.yaml")
	require.NoError(t, os.WriteFile(cfgPath, cfg, 0o644))

	_, _, err = execute(t, config.TargetHomer, "--config", cfgPath, "--quiet")
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestRoot_MissingServicesFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, config.TargetHeimdall,
		"--services", filepath.Join(dir, "none.yml"), "--schema", filepath.Join(dir, "none.json"))
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRoot_UnknownTarget(t *testing.T) {
	_, err := newRootCmd("dashy")
	assert.ErrorIs(t, err, config.ErrUnknownTarget)
}

func TestSchemaGenerate(t *testing.T) {
	stdout, _, err := execute(t, config.TargetHomer, "schema", "generate")
	require.NoError(t, err)

	var generated map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &generated))
	assert.Equal(t, schema.SchemaID, generated["$id"])

	path := filepath.Join(t.TempDir(), "services.schema.json")
	_, _, err = execute(t, config.TargetHomer, "schema", "generate", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, config.TargetHeimdall, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "heimdall-convert")
}
