package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one side of a double-entry. At most one of Debit/Credit
// may be nonzero; both are always >= 0.
type JournalLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// JournalEntry is a balanced set of debit/credit lines recorded as one
// atomic accounting event.
type JournalEntry struct {
	ID        string // "YYYY-MM-NNN", see the id package
	Date      time.Time
	Reference string
	Memo      string
	Project   string // empty = no project scope
	Lines     []JournalLine
}

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
