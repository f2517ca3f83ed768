package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/journal"
	"github.com/grantbooks-dev/grantbooks/internal/model"
	"github.com/grantbooks-dev/grantbooks/internal/payroll"
	"github.com/grantbooks-dev/grantbooks/internal/store"
)

func newPayrollCommand() *cobra.Command {
	payrollCmd := &cobra.Command{
		Use:   "payroll",
		Short: "Payroll operations",
	}
	payrollCmd.AddCommand(newPayrollRunCommand())
	return payrollCmd
}

func newPayrollRunCommand() *cobra.Command {
	var booksDir string
	var dateStr string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run payroll for all configured employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing --date %q: %w", dateStr, err)
			}
			return runPayroll(booksDir, date, dryRun)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().StringVar(&dateStr, "date", "", "pay date (YYYY-MM-DD, required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and print without writing anything")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runPayroll(booksDir string, date time.Time, dryRun bool) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	employees := make([]model.EmployeeCompensation, 0, len(books.Config.Payroll.Employees))
	for _, ec := range books.Config.Payroll.Employees {
		emp, err := ec.Compensation()
		if err != nil {
			return err
		}
		employees = append(employees, emp)
	}

	entry, allocations, err := payroll.RunBatch(employees, date, books.Config.Payroll.Accounts, books.Accounts)
	if err != nil {
		return err
	}

	printPayrollSummary(employees, entry)

	if dryRun {
		fmt.Println("(dry run; nothing written)")
		return nil
	}

	svc := journal.NewService(books.Root, books.Accounts)
	entryID, err := svc.Append(entry)
	if err != nil {
		return err
	}
	fmt.Printf("Committed payroll journal entry %s\n", entryID)

	// Project allocations are advisory; a failure here warns without
	// rolling back the committed entry.
	if len(allocations) > 0 {
		if err := store.AppendPostings(books.Root, allocations); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write %d project allocation posting(s): %v\n", len(allocations), err)
		} else {
			fmt.Printf("Wrote %d project allocation posting(s)\n", len(allocations))
		}
	}

	books.recordAction("payroll", "payroll-run",
		fmt.Sprintf("%d employees, total cost %s", len(employees), entry.Lines[0].Debit.StringFixed(2)), entryID)
	return nil
}

func printPayrollSummary(employees []model.EmployeeCompensation, entry model.JournalEntry) {
	for _, emp := range employees {
		r := payroll.Compute(emp)
		fmt.Printf("%-24s gross %10s  deductions %10s  net %10s\n",
			emp.Name, r.GrossPay.StringFixed(2), r.TotalDeductions.StringFixed(2), r.NetPay.StringFixed(2))
	}
	fmt.Printf("\nJournal entry (%s):\n", entry.Memo)
	for _, l := range entry.Lines {
		side, amount := "debit ", l.Debit
		if l.Debit.IsZero() {
			side, amount = "credit", l.Credit
		}
		fmt.Printf("  %s %-6s %12s\n", side, l.AccountCode, amount.StringFixed(2))
	}
}
