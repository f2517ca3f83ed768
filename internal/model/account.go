package model

import "github.com/shopspring/decimal"

// AccountCategory classifies accounts in the chart of accounts.
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "asset"
	CategoryLiability AccountCategory = "liability"
	CategoryNetAsset  AccountCategory = "net_asset"
	CategoryRevenue   AccountCategory = "revenue"
	CategoryExpense   AccountCategory = "expense"
)

// DebitIncreasing reports whether a debit increases balances in this
// category. Asset and Expense accounts are debit-increasing; Liability,
// NetAsset and Revenue accounts are credit-increasing.
func (c AccountCategory) DebitIncreasing() bool {
	return c == CategoryAsset || c == CategoryExpense
}

// Account represents a row in chart-of-accounts.csv. Codes are sortable
// strings and form the tree via ParentCode; a placeholder account groups
// children and should not directly receive postings.
type Account struct {
	ID          string
	Code        string
	Name        string
	Category    AccountCategory
	Type        string // sub-classification within the category, e.g. "bank"
	ParentCode  string // empty = top-level
	Placeholder bool
	Balance     decimal.Decimal // debit-positive
	Description string
}
