package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oarkflow/dashconv"
)

func newVersionCmd(command string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, and build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", command, dashconv.Version)
			if dashconv.GitCommit != "" {
				fmt.Fprintf(out, "  Commit: %s\n", dashconv.GitCommit)
			}
			if dashconv.BuildDate != "" {
				fmt.Fprintf(out, "  Built:  %s\n", dashconv.BuildDate)
			}
		},
	}
}
