// Package ledger computes account balances and category totals from
// postings. All balances use a single debit-positive convention: Asset and
// Expense accounts grow positive as they increase, Liability, NetAsset and
// Revenue accounts grow negative. Consumers that want credit-normal figures
// shown positive (a revenue report, say) negate at the presentation layer.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// Report counts postings that could not contribute to a balance because
// they reference an unknown account. A nonzero count is a data integrity
// signal for the caller to surface, not an error.
type Report struct {
	SkippedPostings int
	UnknownAccounts []string
}

// ComputeBalances returns the balance of every account as of the given
// date. Each account in accounts appears in the result, zero when it has
// no postings. Postings dated after asOf are excluded; postings whose
// account code is unknown are skipped and counted in the report. Inputs
// are never mutated.
//
// A posting increases its account under the account's normal balance:
// debit-increasing categories (Asset, Expense) gain +Amount, the rest gain
// -Amount. Transfer postings carry a signed amount and are applied in
// debit terms as stored.
func ComputeBalances(accounts []model.Account, postings []model.Posting, asOf time.Time) (map[string]decimal.Decimal, Report) {
	byCode := make(map[string]model.AccountCategory, len(accounts))
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a.Category
		balances[a.Code] = decimal.Zero
	}

	var report Report
	unknown := make(map[string]bool)

	for _, p := range postings {
		if p.Date.After(asOf) {
			continue
		}
		category, ok := byCode[p.AccountCode]
		if !ok {
			report.SkippedPostings++
			unknown[p.AccountCode] = true
			continue
		}
		balances[p.AccountCode] = balances[p.AccountCode].Add(contribution(p, category))
	}

	for code := range unknown {
		report.UnknownAccounts = append(report.UnknownAccounts, code)
	}
	sort.Strings(report.UnknownAccounts)

	return balances, report
}

// contribution converts one posting into a debit-positive balance delta
// for its account.
func contribution(p model.Posting, category model.AccountCategory) decimal.Decimal {
	if p.Kind == model.KindTransfer {
		return p.Amount
	}
	if category.DebitIncreasing() {
		return p.Amount
	}
	return p.Amount.Neg()
}

// CategoryTotals sums debit-positive balances per account category. Codes
// in balances that are not in accounts are skipped and counted in the
// report.
func CategoryTotals(accounts []model.Account, balances map[string]decimal.Decimal) (map[model.AccountCategory]decimal.Decimal, Report) {
	byCode := make(map[string]model.AccountCategory, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a.Category
	}

	totals := map[model.AccountCategory]decimal.Decimal{
		model.CategoryAsset:     decimal.Zero,
		model.CategoryLiability: decimal.Zero,
		model.CategoryNetAsset:  decimal.Zero,
		model.CategoryRevenue:   decimal.Zero,
		model.CategoryExpense:   decimal.Zero,
	}

	var report Report
	unknown := make(map[string]bool)

	for code, bal := range balances {
		category, ok := byCode[code]
		if !ok {
			report.SkippedPostings++
			unknown[code] = true
			continue
		}
		totals[category] = totals[category].Add(bal)
	}

	for code := range unknown {
		report.UnknownAccounts = append(report.UnknownAccounts, code)
	}
	sort.Strings(report.UnknownAccounts)

	return totals, report
}
