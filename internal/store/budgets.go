package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// BudgetsHeader is the CSV header for budgets.csv. One row per budget
// line; budget-level fields repeat on every row, like journal lines.
const BudgetsHeader = "budget_id,name,project,account_code,amount"

const (
	budgetFields = 5
	bColID       = 0
	bColName     = 1
	bColProject  = 2
	bColAcct     = 3
	bColAmount   = 4
)

// ReadBudgets reads budgets.csv, grouping rows on budget_id. Budget order
// and line order follow the file.
func ReadBudgets(r io.Reader) ([]model.Budget, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = budgetFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading budgets CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	byID := make(map[string]*model.Budget)
	var order []string
	for i, rec := range records[1:] {
		if rec[bColID] == "" {
			return nil, fmt.Errorf("row %d: missing budget_id", i+2)
		}
		amount, err := decimal.NewFromString(rec[bColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[bColAmount], err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: budget amount %s must not be negative", i+2, amount)
		}

		b, seen := byID[rec[bColID]]
		if !seen {
			b = &model.Budget{
				ID:      rec[bColID],
				Name:    rec[bColName],
				Project: rec[bColProject],
			}
			byID[rec[bColID]] = b
			order = append(order, rec[bColID])
		}
		b.Lines = append(b.Lines, model.BudgetLine{
			AccountCode: rec[bColAcct],
			Amount:      amount,
		})
	}

	budgets := make([]model.Budget, 0, len(order))
	for _, bid := range order {
		budgets = append(budgets, *byID[bid])
	}
	return budgets, nil
}

// WriteBudgets writes budgets.csv, header included.
func WriteBudgets(w io.Writer, budgets []model.Budget) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(BudgetsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, b := range budgets {
		for i, line := range b.Lines {
			row := make([]string, budgetFields)
			row[bColID] = b.ID
			row[bColName] = b.Name
			row[bColProject] = b.Project
			row[bColAcct] = line.AccountCode
			row[bColAmount] = line.Amount.String()
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing budget %s line %d: %w", b.ID, i+1, err)
			}
		}
	}
	return cw.Error()
}

// LoadBudgets reads budgets.csv from a books root. A missing file means
// no budgets.
func LoadBudgets(booksRoot string) ([]model.Budget, error) {
	f, err := os.Open(filepath.Join(booksRoot, budgetsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening budgets: %w", err)
	}
	defer f.Close()

	return ReadBudgets(f)
}

// SaveBudgets rewrites budgets.csv wholesale. Saving a budget replaces
// all of its lines; deleting a budget removes its lines with it.
func SaveBudgets(booksRoot string, budgets []model.Budget) error {
	if err := os.MkdirAll(booksRoot, 0o755); err != nil {
		return fmt.Errorf("creating books dir: %w", err)
	}

	f, err := os.Create(filepath.Join(booksRoot, budgetsFile))
	if err != nil {
		return fmt.Errorf("creating budgets file: %w", err)
	}
	defer f.Close()

	if err := WriteBudgets(f, budgets); err != nil {
		return fmt.Errorf("writing budgets: %w", err)
	}
	return nil
}
