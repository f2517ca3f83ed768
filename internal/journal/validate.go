package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// balanceEpsilon is the cent-level tolerance for debit/credit comparison.
// Totals within half a cent of each other are considered equal.
var balanceEpsilon = decimal.RequireFromString("0.005")

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account code may receive journal lines.
type AccountChecker interface {
	Exists(code string) bool
	IsPostable(code string) bool
}

// Validate totals the two sides of an entry's lines and reports whether
// they balance. An entry is balanced iff the totals agree within
// balanceEpsilon and the debit total is positive; an all-zero entry is not
// a valid entry. A line with both debit and credit nonzero is malformed
// and makes the entry unbalanced regardless of totals.
func Validate(lines []model.JournalLine) (balanced bool, totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	malformed := false

	for _, l := range lines {
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			malformed = true
		}
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if malformed {
		return false, totalDebit, totalCredit
	}

	diff := totalDebit.Sub(totalCredit).Abs()
	balanced = diff.LessThan(balanceEpsilon) && totalDebit.IsPositive()
	return balanced, totalDebit, totalCredit
}

// Check enforces 5 invariants on a journal entry. An empty result means
// the entry may be committed; any violation is a hard gate, not a warning.
func Check(entry model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, l := range entry.Lines {
		lineRef := fmt.Sprintf("%s line %d", entry.ID, i+1)

		// Invariant 2: at most one of debit/credit per line.
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     lineRef,
				Description: "line must not carry both a debit and a credit",
			})
		}

		// Invariant 3: no negative amounts.
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     lineRef,
				Description: "debit and credit amounts must not be negative",
			})
		}

		// Invariant 4: valid, postable account references.
		switch {
		case !accounts.Exists(l.AccountCode):
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     lineRef,
				Description: fmt.Sprintf("unknown account %s", l.AccountCode),
			})
		case !accounts.IsPostable(l.AccountCode):
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     lineRef,
				Description: fmt.Sprintf("account %s is a placeholder and cannot receive postings", l.AccountCode),
			})
		}

		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	// Invariant 1: debits equal credits within balanceEpsilon.
	if totalDebit.Sub(totalCredit).Abs().GreaterThanOrEqual(balanceEpsilon) {
		errs = append(errs, ValidationError{
			Invariant:   1,
			EntryID:     entry.ID,
			Description: fmt.Sprintf("entries must balance: debit total %s, credit total %s", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	// Invariant 5: an all-zero entry is not a valid entry.
	if !totalDebit.IsPositive() && !totalCredit.IsPositive() {
		errs = append(errs, ValidationError{
			Invariant:   5,
			EntryID:     entry.ID,
			Description: "entry has no amounts",
		})
	}

	return errs
}
