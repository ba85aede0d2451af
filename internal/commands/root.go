package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/synthbooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "synthbooks",
		Short:   "Synthetic accounting datasets with derived journal and ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newDeriveCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}
