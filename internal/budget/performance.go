// Package budget compares budgeted amounts against actual spend. Every
// figure is recomputed from the full posting set on demand; nothing is
// cached or incrementally maintained.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

var hundred = decimal.NewFromInt(100)

// LinePerformance is the computed state of one budget line.
type LinePerformance struct {
	AccountCode string
	Budgeted    decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal // negative = over budget
	PercentUsed decimal.Decimal
}

// Performance aggregates a whole budget.
type Performance struct {
	Lines       []LinePerformance
	Budgeted    decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	PercentUsed decimal.Decimal
}

// ComputeLinePerformance computes spent/remaining/percent-used for one
// budget line. Spent sums expense postings against the line's account,
// restricted to projectScope when non-nil; postings are not filtered by
// date (whole-lifetime spend). PercentUsed is zero when nothing is
// budgeted. Over-budget lines are a valid state, not an error.
func ComputeLinePerformance(line model.BudgetLine, postings []model.Posting, projectScope *string) LinePerformance {
	spent := decimal.Zero
	for _, p := range postings {
		if p.Kind != model.KindExpense || p.AccountCode != line.AccountCode {
			continue
		}
		if projectScope != nil && p.Project != *projectScope {
			continue
		}
		spent = spent.Add(p.Amount)
	}

	return LinePerformance{
		AccountCode: line.AccountCode,
		Budgeted:    line.Amount,
		Spent:       spent,
		Remaining:   line.Amount.Sub(spent),
		PercentUsed: percentUsed(spent, line.Amount),
	}
}

// ComputeBudgetPerformance computes every line of a budget and the
// aggregate totals, applying the budget's project scope to each line.
func ComputeBudgetPerformance(b model.Budget, postings []model.Posting) Performance {
	var scope *string
	if b.Project != "" {
		scope = &b.Project
	}

	perf := Performance{
		Budgeted:  decimal.Zero,
		Spent:     decimal.Zero,
		Remaining: decimal.Zero,
	}
	for _, line := range b.Lines {
		lp := ComputeLinePerformance(line, postings, scope)
		perf.Lines = append(perf.Lines, lp)
		perf.Budgeted = perf.Budgeted.Add(lp.Budgeted)
		perf.Spent = perf.Spent.Add(lp.Spent)
		perf.Remaining = perf.Remaining.Add(lp.Remaining)
	}
	perf.PercentUsed = percentUsed(perf.Spent, perf.Budgeted)
	return perf
}

func percentUsed(spent, budgeted decimal.Decimal) decimal.Decimal {
	if !budgeted.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(budgeted).Mul(hundred)
}
