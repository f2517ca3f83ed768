package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/budget"
	"github.com/grantbooks-dev/grantbooks/internal/importer"
	"github.com/grantbooks-dev/grantbooks/internal/store"
)

func newBudgetCommand() *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget operations",
	}
	budgetCmd.AddCommand(newBudgetReportCommand())
	return budgetCmd
}

func newBudgetReportCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "report [budget-id]",
		Short: "Show spent/remaining/percent-used per budget line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budgetID := ""
			if len(args) > 0 {
				budgetID = args[0]
			}
			return runBudgetReport(booksDir, budgetID)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")

	return cmd
}

func runBudgetReport(booksDir, budgetID string) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	budgets, err := store.LoadBudgets(books.Root)
	if err != nil {
		return err
	}

	postings, err := store.LoadPostings(books.Root)
	if err != nil {
		return err
	}

	postings, rr := importer.ResolvePostings(postings, books.Accounts, books.Config.Projects)
	if rr.SkippedPostings > 0 {
		fmt.Printf("warning: skipped %d posting(s) against unknown accounts: %v\n",
			rr.SkippedPostings, rr.UnknownAccounts)
	}
	if len(rr.UnknownProjects) > 0 {
		fmt.Printf("warning: cleared unknown project(s) on postings: %v\n", rr.UnknownProjects)
	}

	shown := 0
	for _, b := range budgets {
		if budgetID != "" && b.ID != budgetID {
			continue
		}
		shown++

		perf := budget.ComputeBudgetPerformance(b, postings)
		fmt.Printf("%s (%s)", b.Name, b.ID)
		if b.Project != "" {
			fmt.Printf(" [project: %s]", b.Project)
		}
		fmt.Println()

		for _, lp := range perf.Lines {
			fmt.Printf("  %-6s budgeted %12s  spent %12s  remaining %12s  %6s%%\n",
				lp.AccountCode,
				lp.Budgeted.StringFixed(2),
				lp.Spent.StringFixed(2),
				lp.Remaining.StringFixed(2),
				lp.PercentUsed.Round(1).String())
		}
		fmt.Printf("  total  budgeted %12s  spent %12s  remaining %12s  %6s%%\n\n",
			perf.Budgeted.StringFixed(2),
			perf.Spent.StringFixed(2),
			perf.Remaining.StringFixed(2),
			perf.PercentUsed.Round(1).String())
	}

	if budgetID != "" && shown == 0 {
		return fmt.Errorf("budget %s not found", budgetID)
	}
	if shown == 0 {
		fmt.Println("No budgets defined")
	}
	return nil
}
