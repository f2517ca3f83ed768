package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/importer"
	"github.com/grantbooks-dev/grantbooks/internal/ledger"
	"github.com/grantbooks-dev/grantbooks/internal/model"
	"github.com/grantbooks-dev/grantbooks/internal/store"
)

func newBalancesCommand() *cobra.Command {
	var booksDir string
	var asOf string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show account balances and category totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOfDate := time.Now()
			if asOf != "" {
				var err error
				asOfDate, err = time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("parsing --as-of %q: %w", asOf, err)
				}
			}
			return runBalances(booksDir, asOfDate)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().StringVar(&asOf, "as-of", "", "valuation date (YYYY-MM-DD, default today)")

	return cmd
}

func runBalances(booksDir string, asOf time.Time) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	postings, err := store.LoadPostings(books.Root)
	if err != nil {
		return err
	}

	chart := books.Accounts.All()
	if cr := importer.VerifyChart(chart); len(cr.OrphanAccounts) > 0 || len(cr.CategoryClashes) > 0 {
		if len(cr.OrphanAccounts) > 0 {
			fmt.Printf("warning: accounts with unresolved parent: %v\n", cr.OrphanAccounts)
		}
		if len(cr.CategoryClashes) > 0 {
			fmt.Printf("warning: accounts whose category differs from their parent: %v\n", cr.CategoryClashes)
		}
	}

	balances, report := ledger.ComputeBalances(chart, postings, asOf)
	totals, _ := ledger.CategoryTotals(chart, balances)

	fmt.Printf("Balances as of %s\n\n", asOf.Format("2006-01-02"))
	for _, a := range chart {
		if a.Placeholder {
			continue
		}
		fmt.Printf("%-6s %-32s %12s\n", a.Code, a.Name, balances[a.Code].StringFixed(2))
	}

	fmt.Println()
	for _, cat := range []model.AccountCategory{
		model.CategoryAsset,
		model.CategoryLiability,
		model.CategoryNetAsset,
		model.CategoryRevenue,
		model.CategoryExpense,
	} {
		fmt.Printf("%-12s %12s\n", cat, totals[cat].StringFixed(2))
	}

	if report.SkippedPostings > 0 {
		fmt.Printf("\nwarning: skipped %d posting(s) against unknown accounts: %v\n",
			report.SkippedPostings, report.UnknownAccounts)
	}
	return nil
}
