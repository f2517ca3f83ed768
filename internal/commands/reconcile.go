package commands

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/importer"
	"github.com/grantbooks-dev/grantbooks/internal/reconcile"
	"github.com/grantbooks-dev/grantbooks/internal/store"
)

func newReconcileCommand() *cobra.Command {
	var booksDir string
	var format string
	var endingStr string
	var sorted bool

	cmd := &cobra.Command{
		Use:   "reconcile <statement-file>",
		Short: "Match book postings against a bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ending *decimal.Decimal
			if endingStr != "" {
				v, err := decimal.NewFromString(endingStr)
				if err != nil {
					return fmt.Errorf("parsing --ending-balance %q: %w", endingStr, err)
				}
				ending = &v
			}
			return runReconcile(booksDir, args[0], format, ending, sorted)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().StringVar(&format, "format", "generic", "statement format")
	cmd.Flags().StringVar(&endingStr, "ending-balance", "", "statement ending balance for the finish gate")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "sort both pools by (date, amount) for reproducible matching")

	return cmd
}

func runReconcile(booksDir, statementPath, format string, endingBalance *decimal.Decimal, sorted bool) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q (available: %v)", format, importer.DefaultRegistry().Formats())
	}

	f, err := os.Open(statementPath)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing statement: %w", err)
	}

	book, err := store.LoadPostings(books.Root)
	if err != nil {
		return err
	}

	eps, err := books.Config.Reconciliation.Epsilon()
	if err != nil {
		return err
	}
	window := books.Config.Reconciliation.WindowDays

	if sorted {
		book, rows = reconcile.SortedPools(book, rows)
	}

	matches := reconcile.AutoMatch(book, rows, nil, window, eps)
	unmatchedPostings, unmatchedRows := reconcile.Unmatched(book, rows, matches)

	fmt.Printf("Matched %d of %d statement rows (window %d days, tolerance %s)\n",
		len(matches), len(rows), window, eps.String())

	if len(unmatchedPostings) > 0 {
		fmt.Printf("\nUnmatched book postings (%d):\n", len(unmatchedPostings))
		for _, p := range unmatchedPostings {
			fmt.Printf("  %s %12s  %s\n", p.Date.Format("2006-01-02"), p.SignedAmount().StringFixed(2), p.Description)
		}
	}
	if len(unmatchedRows) > 0 {
		fmt.Printf("\nUnmatched statement rows (%d):\n", len(unmatchedRows))
		for _, i := range unmatchedRows {
			r := rows[i]
			fmt.Printf("  %s %12s  %s\n", r.Date.Format("2006-01-02"), r.Amount.StringFixed(2), r.Description)
		}
	}

	if endingBalance != nil {
		if reconcile.Balanced(*endingBalance, book, matches, eps) {
			fmt.Println("\nReconciliation is balanced; session may be finished")
			books.recordAction("reconcile", "reconcile-finish",
				fmt.Sprintf("%d matches against %s", len(matches), statementPath), statementPath)
		} else {
			fmt.Println("\nReconciliation is NOT balanced; finishing is blocked")
		}
	}
	return nil
}
