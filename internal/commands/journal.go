package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/journal"
	"github.com/grantbooks-dev/grantbooks/internal/model"
)

func newJournalCommand() *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal entry operations",
	}
	journalCmd.AddCommand(newJournalAddCommand())
	journalCmd.AddCommand(newJournalCheckCommand())
	return journalCmd
}

func newJournalAddCommand() *cobra.Command {
	var booksDir string
	var dateStr string
	var memo string
	var reference string
	var project string
	var debitAccount string
	var creditAccount string
	var amountStr string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a balanced two-line journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing --date %q: %w", dateStr, err)
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amountStr, err)
			}
			return runJournalAdd(booksDir, date, memo, reference, project, debitAccount, creditAccount, amount)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().StringVar(&dateStr, "date", "", "entry date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&memo, "memo", "", "entry memo")
	cmd.Flags().StringVar(&reference, "ref", "", "external reference")
	cmd.Flags().StringVar(&project, "project", "", "project scope")
	cmd.Flags().StringVar(&debitAccount, "debit", "", "debit account code (required)")
	cmd.Flags().StringVar(&creditAccount, "credit", "", "credit account code (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runJournalAdd(booksDir string, date time.Time, memo, reference, project, debitAccount, creditAccount string, amount decimal.Decimal) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	svc := journal.NewService(books.Root, books.Accounts)
	entryID, err := svc.Append(model.JournalEntry{
		Date:      date,
		Reference: reference,
		Memo:      memo,
		Project:   project,
		Lines: []model.JournalLine{
			{AccountCode: debitAccount, Debit: amount},
			{AccountCode: creditAccount, Credit: amount},
		},
	})
	if err != nil {
		return err
	}

	books.recordAction("journal", "journal-add", memo, entryID)
	fmt.Printf("Added journal entry %s\n", entryID)
	return nil
}

func newJournalCheckCommand() *cobra.Command {
	var booksDir string
	var year int
	var month int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every journal entry in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalCheck(booksDir, year, month)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "year")
	cmd.Flags().IntVar(&month, "month", int(time.Now().Month()), "month (1-12)")

	return cmd
}

func runJournalCheck(booksDir string, year, month int) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	svc := journal.NewService(books.Root, books.Accounts)
	entries, err := svc.ReadMonth(year, month)
	if err != nil {
		return err
	}

	failed := 0
	for _, e := range entries {
		if verrs := journal.Check(e, books.Accounts); len(verrs) > 0 {
			failed++
			for _, ve := range verrs {
				fmt.Println(ve.Error())
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed validation", failed, len(entries))
	}
	fmt.Printf("All %d entries in %04d-%02d are valid\n", len(entries), year, month)
	return nil
}
