/*
Package cmd provides the CLI commands for the dashboard converters.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/dashconv/internal/config"
	"github.com/oarkflow/dashconv/internal/heimdall"
	"github.com/oarkflow/dashconv/internal/homer"
	"github.com/oarkflow/dashconv/internal/pipeline"
)

type rootFlags struct {
	cfgFile string
	verbose bool
	quiet   bool
	options config.Options
}

type targetInfo struct {
	command string
	target  pipeline.Target
}

var targets = map[string]targetInfo{
	config.TargetHeimdall: {command: "heimdall-convert", target: heimdall.Target{}},
	config.TargetHomer:    {command: "homer-convert", target: homer.Target{}},
}

// Execute runs the converter for target. Every error is reported on stderr
// exactly once before being returned.
func Execute(target string) error {
	rootCmd, err := newRootCmd(target)
	if err != nil {
		log.NewWithOptions(os.Stderr, log.Options{}).Error(err)
		return err
	}
	return run(rootCmd)
}

// reportedError marks an error the command already logged through its
// configured logger
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// run executes rootCmd and logs the errors that surfaced before a command
// could log them itself, such as flag and argument errors
func run(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		log.NewWithOptions(rootCmd.ErrOrStderr(), log.Options{}).Error(err)
	}
	return err
}

func newRootCmd(target string) (*cobra.Command, error) {
	info, ok := targets[target]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %v)", config.ErrUnknownTarget, target, config.Targets())
	}
	defaults, err := config.Defaults(target)
	if err != nil {
		return nil, err
	}

	flags := new(rootFlags)
	name := info.target.Name()

	rootCmd := &cobra.Command{
		Use:   info.command,
		Short: fmt.Sprintf("Convert services.yml to %s dashboard configuration", name),
		Long: fmt.Sprintf(`%[1]s reads a services.yml file, validates it against a JSON Schema
and writes the %[2]s dashboard configuration.

Example:
  %[1]s                                  # Convert using default paths
  %[1]s --validate-only                  # Validate without writing output
  %[1]s --services svc.yml --output out.yml
  %[1]s schema generate services.schema.json`, info.command, name),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), flags)

			opts, err := config.Resolve(target, flags.options, flags.cfgFile)
			if err != nil {
				logger.Error(err)
				return reportedError{err}
			}

			if _, err := pipeline.New(opts, info.target, logger).Run(); err != nil {
				// the pipeline has already logged the violation itself
				if errors.Is(err, pipeline.ErrValidationFailed) {
					logger.Error("Validation failed. Aborting.")
				} else {
					logger.Error(err)
				}
				return reportedError{err}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.cfgFile, "config", "c", "", "optional config file providing default paths")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only print warnings and errors")

	rootCmd.Flags().StringVar(&flags.options.Services, "services", "", fmt.Sprintf("path to services.yml (default: %s)", defaults.Services))
	rootCmd.Flags().StringVar(&flags.options.Schema, "schema", "", fmt.Sprintf("path to JSON Schema (default: %s)", defaults.Schema))
	rootCmd.Flags().StringVar(&flags.options.Output, "output", "", fmt.Sprintf("output file path (default: %s)", defaults.Output))
	rootCmd.Flags().BoolVar(&flags.options.NoValidate, "no-validate", false, "skip schema validation")
	rootCmd.Flags().BoolVar(&flags.options.ValidateOnly, "validate-only", false, "validate only; do not generate output")

	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newVersionCmd(info.command))

	return rootCmd, nil
}

func newLogger(w io.Writer, flags *rootFlags) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level: log.InfoLevel,
	})

	switch {
	case flags.verbose:
		logger.SetLevel(log.DebugLevel)
	case flags.quiet:
		logger.SetLevel(log.WarnLevel)
	}

	return logger
}
