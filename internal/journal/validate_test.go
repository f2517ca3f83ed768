package journal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	codes        map[string]bool
	placeholders map[string]bool
}

func (m *mockAccounts) Exists(code string) bool     { return m.codes[code] }
func (m *mockAccounts) IsPostable(code string) bool { return m.codes[code] && !m.placeholders[code] }

func newMockAccounts(codes ...string) *mockAccounts {
	m := &mockAccounts{codes: make(map[string]bool), placeholders: make(map[string]bool)}
	for _, c := range codes {
		m.codes[c] = true
	}
	return m
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var defaultAccounts = newMockAccounts("1010", "2200", "2210", "2220", "4010", "5100")

func debit(account, amount string) model.JournalLine {
	return model.JournalLine{AccountCode: account, Debit: dec(amount)}
}

func credit(account, amount string) model.JournalLine {
	return model.JournalLine{AccountCode: account, Credit: dec(amount)}
}

func TestValidate_Balanced(t *testing.T) {
	balanced, totalDebit, totalCredit := Validate([]model.JournalLine{
		debit("5100", "100.00"),
		credit("1010", "100.00"),
	})
	assert.True(t, balanced)
	assert.Equal(t, "100.00", totalDebit.StringFixed(2))
	assert.Equal(t, "100.00", totalCredit.StringFixed(2))
}

func TestValidate_Unbalanced(t *testing.T) {
	balanced, totalDebit, totalCredit := Validate([]model.JournalLine{
		debit("5100", "100.00"),
		credit("1010", "99.00"),
	})
	assert.False(t, balanced)
	assert.Equal(t, "100.00", totalDebit.StringFixed(2))
	assert.Equal(t, "99.00", totalCredit.StringFixed(2))
}

func TestValidate_EpsilonTolerance(t *testing.T) {
	// Half-cent drift from repeated rate math still balances.
	balanced, _, _ := Validate([]model.JournalLine{
		debit("5100", "100.004"),
		credit("1010", "100.00"),
	})
	assert.True(t, balanced)

	balanced, _, _ = Validate([]model.JournalLine{
		debit("5100", "100.005"),
		credit("1010", "100.00"),
	})
	assert.False(t, balanced)
}

func TestValidate_AllZeroEntryInvalid(t *testing.T) {
	balanced, totalDebit, totalCredit := Validate([]model.JournalLine{
		{AccountCode: "5100"},
		{AccountCode: "1010"},
	})
	assert.False(t, balanced, "an entry with zero totals is empty, not balanced")
	assert.True(t, totalDebit.IsZero())
	assert.True(t, totalCredit.IsZero())
}

func TestValidate_BothSidesOnOneLineMalformed(t *testing.T) {
	balanced, _, _ := Validate([]model.JournalLine{
		{AccountCode: "5100", Debit: dec("50.00"), Credit: dec("50.00")},
	})
	assert.False(t, balanced)
}

func TestValidate_EmptyLines(t *testing.T) {
	balanced, totalDebit, totalCredit := Validate(nil)
	assert.False(t, balanced)
	assert.True(t, totalDebit.IsZero())
	assert.True(t, totalCredit.IsZero())
}

func entryWith(lines ...model.JournalLine) model.JournalEntry {
	return model.JournalEntry{ID: "2025-03-001", Lines: lines}
}

func hasInvariant(errs []ValidationError, invariant int) bool {
	for _, e := range errs {
		if e.Invariant == invariant {
			return true
		}
	}
	return false
}

func TestCheck_Balanced(t *testing.T) {
	errs := Check(entryWith(debit("5100", "100.00"), credit("1010", "100.00")), defaultAccounts)
	assert.Empty(t, errs)
}

func TestCheck_Invariant1_Unbalanced(t *testing.T) {
	errs := Check(entryWith(debit("5100", "100.00"), credit("1010", "50.00")), defaultAccounts)
	require.NotEmpty(t, errs)
	assert.True(t, hasInvariant(errs, 1))
	assert.Contains(t, errs[len(errs)-1].Description, "debit total 100.00, credit total 50.00")
}

func TestCheck_Invariant2_BothSides(t *testing.T) {
	errs := Check(entryWith(
		model.JournalLine{AccountCode: "5100", Debit: dec("100.00"), Credit: dec("100.00")},
		credit("1010", "0.00"),
	), defaultAccounts)
	assert.True(t, hasInvariant(errs, 2))
}

func TestCheck_Invariant3_NegativeAmount(t *testing.T) {
	errs := Check(entryWith(debit("5100", "-10.00"), credit("1010", "-10.00")), defaultAccounts)
	assert.True(t, hasInvariant(errs, 3))
}

func TestCheck_Invariant4_UnknownAccount(t *testing.T) {
	errs := Check(entryWith(debit("9999", "50.00"), credit("1010", "50.00")), defaultAccounts)
	assert.True(t, hasInvariant(errs, 4))
}

func TestCheck_Invariant4_PlaceholderAccount(t *testing.T) {
	accts := newMockAccounts("1010", "5000")
	accts.placeholders["5000"] = true

	errs := Check(entryWith(debit("5000", "50.00"), credit("1010", "50.00")), accts)
	require.True(t, hasInvariant(errs, 4))
	assert.Contains(t, errs[0].Description, "placeholder")
}

func TestCheck_Invariant5_EmptyEntry(t *testing.T) {
	errs := Check(entryWith(), defaultAccounts)
	assert.True(t, hasInvariant(errs, 5))
}

func TestCheck_MultiLineBalanced(t *testing.T) {
	// Split expense across two accounts against one cash credit.
	errs := Check(entryWith(
		debit("5100", "60.00"),
		debit("5100", "40.00"),
		credit("1010", "100.00"),
	), defaultAccounts)
	assert.Empty(t, errs)
}

func TestCheck_MultiError(t *testing.T) {
	errs := Check(entryWith(
		model.JournalLine{AccountCode: "9999", Debit: dec("100.00")},
		credit("1010", "50.00"),
	), defaultAccounts)
	assert.Greater(t, len(errs), 1, "should report every violated invariant")
}
