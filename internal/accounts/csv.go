package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

const (
	numFields      = 9
	colID          = 0
	colCode        = 1
	colName        = 2
	colCategory    = 3
	colType        = 4
	colParent      = 5
	colPlaceholder = 6
	colBalance     = 7
	colDesc        = 8
)

var validCategories = map[model.AccountCategory]bool{
	model.CategoryAsset:     true,
	model.CategoryLiability: true,
	model.CategoryNetAsset:  true,
	model.CategoryRevenue:   true,
	model.CategoryExpense:   true,
}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"account_id", "code", "name", "category", "type", "parent_code", "placeholder", "balance", "description"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colCategory] = string(acct.Category)
	row[colType] = acct.Type
	row[colParent] = acct.ParentCode
	if acct.Placeholder {
		row[colPlaceholder] = "true"
	}
	if !acct.Balance.IsZero() {
		row[colBalance] = acct.Balance.StringFixed(2)
	}
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colCode] == "" {
		return model.Account{}, fmt.Errorf("missing account code")
	}

	category := model.AccountCategory(record[colCategory])
	if !validCategories[category] {
		return model.Account{}, fmt.Errorf("unknown category %q for account %s", record[colCategory], record[colCode])
	}

	var placeholder bool
	if record[colPlaceholder] != "" {
		var err error
		placeholder, err = strconv.ParseBool(record[colPlaceholder])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing placeholder %q: %w", record[colPlaceholder], err)
		}
	}

	balance := decimal.Zero
	if record[colBalance] != "" {
		var err error
		balance, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	return model.Account{
		ID:          record[colID],
		Code:        record[colCode],
		Name:        record[colName],
		Category:    category,
		Type:        record[colType],
		ParentCode:  record[colParent],
		Placeholder: placeholder,
		Balance:     balance,
		Description: record[colDesc],
	}, nil
}
