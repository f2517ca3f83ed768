// Package reconcile pairs book postings against bank statement rows.
//
// The matcher is a greedy single pass, not an optimal assignment: ties
// between candidate rows inside the window go to the first row in
// statement order, and book postings are considered in list order
// ("greedy-by-list-order"). False positives are possible when several
// candidates fall inside the window; a human reviewer can always unmatch
// and re-match, so match quality is advisory, never a guarantee.
package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// Matching defaults.
const DefaultWindowDays = 3

// DefaultAmountEpsilon is the default tolerance for amount comparison.
var DefaultAmountEpsilon = decimal.RequireFromString("0.01")

// AutoMatch pairs unmatched book postings with unmatched statement rows.
// A posting matches the first available row whose amount is within
// amountEpsilon of the posting's signed amount and whose date is within
// windowDays. Each side matches at most once per session; pairs in
// alreadyMatched keep both sides out of the pools, so re-running with a
// previous result adds nothing.
func AutoMatch(book []model.Posting, rows []model.BankStatementRow, alreadyMatched []model.MatchedPair, windowDays int, amountEpsilon decimal.Decimal) []model.MatchedPair {
	usedPostings := make(map[string]bool, len(alreadyMatched))
	usedRows := make(map[int]bool, len(alreadyMatched))
	for _, m := range alreadyMatched {
		usedPostings[m.PostingID] = true
		usedRows[m.StatementIndex] = true
	}

	var matches []model.MatchedPair
	for _, p := range book {
		if usedPostings[p.ID] {
			continue
		}
		amount := p.SignedAmount()
		for i, row := range rows {
			if usedRows[i] {
				continue
			}
			if !amountsClose(row.Amount, amount, amountEpsilon) {
				continue
			}
			if daysApart(row.Date, p.Date) > windowDays {
				continue
			}
			matches = append(matches, model.MatchedPair{PostingID: p.ID, StatementIndex: i})
			usedPostings[p.ID] = true
			usedRows[i] = true
			break
		}
	}
	return matches
}

// Unmatched returns the residual pools after a session's matches: book
// postings and statement row indices that appear in no pair.
func Unmatched(book []model.Posting, rows []model.BankStatementRow, matches []model.MatchedPair) (postings []model.Posting, rowIndexes []int) {
	usedPostings := make(map[string]bool, len(matches))
	usedRows := make(map[int]bool, len(matches))
	for _, m := range matches {
		usedPostings[m.PostingID] = true
		usedRows[m.StatementIndex] = true
	}

	for _, p := range book {
		if !usedPostings[p.ID] {
			postings = append(postings, p)
		}
	}
	for i := range rows {
		if !usedRows[i] {
			rowIndexes = append(rowIndexes, i)
		}
	}
	return postings, rowIndexes
}

// Balanced reports whether a session may be finished: the statement's
// ending balance and the sum of matched book amounts must agree within
// amountEpsilon.
func Balanced(statementEndingBalance decimal.Decimal, book []model.Posting, matches []model.MatchedPair, amountEpsilon decimal.Decimal) bool {
	byID := make(map[string]model.Posting, len(book))
	for _, p := range book {
		byID[p.ID] = p
	}

	total := decimal.Zero
	for _, m := range matches {
		if p, ok := byID[m.PostingID]; ok {
			total = total.Add(p.SignedAmount())
		}
	}
	return statementEndingBalance.Sub(total).Abs().LessThan(amountEpsilon)
}

// SortedPools copies both pools sorted by (date, amount) so AutoMatch
// results do not depend on caller-supplied ordering. Statement row
// indices in the returned slice no longer correspond to the caller's
// slice, so callers must match against the sorted copy throughout the
// session.
func SortedPools(book []model.Posting, rows []model.BankStatementRow) ([]model.Posting, []model.BankStatementRow) {
	sortedBook := make([]model.Posting, len(book))
	copy(sortedBook, book)
	sort.SliceStable(sortedBook, func(i, j int) bool {
		if !sortedBook[i].Date.Equal(sortedBook[j].Date) {
			return sortedBook[i].Date.Before(sortedBook[j].Date)
		}
		return sortedBook[i].SignedAmount().LessThan(sortedBook[j].SignedAmount())
	})

	sortedRows := make([]model.BankStatementRow, len(rows))
	copy(sortedRows, rows)
	sort.SliceStable(sortedRows, func(i, j int) bool {
		if !sortedRows[i].Date.Equal(sortedRows[j].Date) {
			return sortedRows[i].Date.Before(sortedRows[j].Date)
		}
		return sortedRows[i].Amount.LessThan(sortedRows[j].Amount)
	})

	return sortedBook, sortedRows
}

func amountsClose(a, b, epsilon decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(epsilon)
}

// daysApart returns the absolute whole-day distance between two dates,
// ignoring time of day.
func daysApart(a, b time.Time) int {
	ad := a.Truncate(24 * time.Hour)
	bd := b.Truncate(24 * time.Hour)
	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
