package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ffbun/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show ffbun CLI version information.

Displays:
  - ffbun CLI version, commit, and build date
  - git binary used by init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.FullVersionString(version.Get(), version.DetectGit()))
			return nil
		},
	}
}
