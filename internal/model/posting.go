package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingKind tags a posting with the direction its amount moves money.
type PostingKind string

const (
	KindIncome    PostingKind = "income"
	KindExpense   PostingKind = "expense"
	KindAsset     PostingKind = "asset"
	KindLiability PostingKind = "liability"
	KindTransfer  PostingKind = "transfer"
)

// Posting is a single dated movement of money against one account (not a
// double-entry line). Amount is stored unsigned; the sign is derived from
// Kind. Transfer postings are the exception and carry a signed amount.
type Posting struct {
	ID          string
	Date        time.Time
	Description string
	AccountCode string
	Kind        PostingKind
	Amount      decimal.Decimal
	Project     string // empty = unallocated
	Fund        string
	Notes       string
}

// SignedAmount returns the posting's amount in bank-statement convention:
// positive = money in (deposit), negative = money out. Income postings are
// deposits; Expense, Asset and Liability postings spend cash; Transfer
// postings carry their sign as stored.
func (p Posting) SignedAmount() decimal.Decimal {
	switch p.Kind {
	case KindIncome:
		return p.Amount
	case KindTransfer:
		return p.Amount
	default:
		return p.Amount.Neg()
	}
}

// BankStatementRow is one parsed row of an uploaded bank statement.
// Positive = deposit, negative = withdrawal. Rows live only for the
// duration of a reconciliation session and are never persisted.
type BankStatementRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// MatchedPair associates a book posting with a statement row for one
// reconciliation session. The row is identified by its index in the
// session's statement slice.
type MatchedPair struct {
	PostingID      string
	StatementIndex int
}
