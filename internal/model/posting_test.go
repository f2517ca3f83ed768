package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPostingSignedAmount(t *testing.T) {
	tests := []struct {
		kind   PostingKind
		amount string
		want   string
	}{
		{KindIncome, "250.00", "250.00"},
		{KindExpense, "75.50", "-75.50"},
		{KindAsset, "1200.00", "-1200.00"},
		{KindLiability, "300.00", "-300.00"},
		{KindTransfer, "-40.00", "-40.00"},
		{KindTransfer, "40.00", "40.00"},
	}
	for _, tt := range tests {
		p := Posting{Kind: tt.kind, Amount: decimal.RequireFromString(tt.amount)}
		assert.Equal(t, tt.want, p.SignedAmount().StringFixed(2), "SignedAmount(%s %s)", tt.kind, tt.amount)
	}
}

func TestJournalEntryTotals(t *testing.T) {
	e := JournalEntry{
		Lines: []JournalLine{
			{AccountCode: "5100", Debit: decimal.RequireFromString("60.00")},
			{AccountCode: "5100", Debit: decimal.RequireFromString("40.00")},
			{AccountCode: "1010", Credit: decimal.RequireFromString("100.00")},
		},
	}
	assert.Equal(t, "100.00", e.TotalDebit().StringFixed(2))
	assert.Equal(t, "100.00", e.TotalCredit().StringFixed(2))
}
