package model

import "github.com/shopspring/decimal"

// BudgetLine is a single (account, amount) pair within a budget, against
// which actual spend is compared. Amount is always >= 0.
type BudgetLine struct {
	AccountCode string
	Amount      decimal.Decimal
}

// Budget owns an ordered list of lines and an optional project scope.
// Lines are replaced wholesale on every save.
type Budget struct {
	ID      string
	Name    string
	Project string // empty = organization-wide
	Lines   []BudgetLine
}
