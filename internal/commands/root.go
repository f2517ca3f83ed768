package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "grantbooks",
		Short:   "Nonprofit bookkeeping on plain CSV files",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBalancesCommand())
	rootCmd.AddCommand(newJournalCommand())
	rootCmd.AddCommand(newBudgetCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newPayrollCommand())

	return rootCmd
}
