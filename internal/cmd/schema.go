package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/dashconv/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "JSON Schema utilities",
		Long: `Utilities for the JSON Schema that describes services.yml.

The schema is reflected from the same typed records the converters decode,
so a document that validates against it always converts.`,
	}

	schemaCmd.AddCommand(&cobra.Command{
		Use:   "generate [output]",
		Short: "Generate JSON Schema",
		Long: `Generate the JSON Schema for services.yml.

If no output file is specified, the schema is written to stdout.

Examples:
  homer-convert schema generate
  homer-convert schema generate scripts/my-services/services.schema.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if err := schema.WriteSchema(args[0]); err != nil {
					return fmt.Errorf("failed to write schema: %w", err)
				}
				log.NewWithOptions(cmd.ErrOrStderr(), log.Options{}).Info("Schema written", "path", args[0])
				return nil
			}

			data, err := schema.GenerateJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	})

	return schemaCmd
}
