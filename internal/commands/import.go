package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grantbooks-dev/grantbooks/internal/importer"
	"github.com/grantbooks-dev/grantbooks/internal/model"
)

func newImportCommand() *cobra.Command {
	var booksDir string
	var format string
	var list bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Parse a bank statement file from the import directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				return runImportList(booksDir)
			}
			return runImport(booksDir, args[0], format)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().StringVar(&format, "format", "generic", "statement format")
	cmd.Flags().BoolVar(&list, "list", false, "list files waiting in import/")

	return cmd
}

func runImportList(booksDir string) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	files, err := importer.Scan(books.Root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No statement files waiting in import/")
		return nil
	}
	for _, f := range files {
		fmt.Printf("%s (%d bytes)\n", f.Name, f.Size)
	}
	return nil
}

// runImport parses a statement file and reports its rows. Parsed rows are
// session input for the reconcile command; the file itself moves to
// import/processed/ so it is not picked up twice.
func runImport(booksDir, fileName, format string) error {
	books, err := loadBooks(booksDir)
	if err != nil {
		return err
	}

	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q (available: %v)", format, importer.DefaultRegistry().Formats())
	}

	files, err := importer.Scan(books.Root)
	if err != nil {
		return err
	}
	var path string
	for _, f := range files {
		if f.Name == fileName {
			path = f.Path
			break
		}
	}
	if path == "" {
		return fmt.Errorf("file %s not found in import/", fileName)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", fileName, err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", fileName, err)
	}

	printStatementRows(rows)

	if err := importer.MarkProcessed(books.Root, fileName); err != nil {
		return err
	}

	books.recordAction("import", "statement-import", fmt.Sprintf("%s (%d rows)", fileName, len(rows)), fileName)
	return nil
}

func printStatementRows(rows []model.BankStatementRow) {
	for _, r := range rows {
		fmt.Printf("%s %12s  %s\n", r.Date.Format("2006-01-02"), r.Amount.StringFixed(2), r.Description)
	}
	fmt.Printf("%d rows parsed\n", len(rows))
}
