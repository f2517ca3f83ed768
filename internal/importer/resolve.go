package importer

import (
	"sort"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// ResolveReport counts records an import had to skip or repair. Nonzero
// counts are surfaced to the user alongside the import result; a broken
// reference never aborts the whole import.
type ResolveReport struct {
	SkippedPostings int
	UnknownAccounts []string
	UnknownProjects []string
	OrphanAccounts  []string // accounts whose parent_code resolves to nothing
	CategoryClashes []string // accounts whose category differs from their parent's
}

// AccountLookup is the chart surface import resolution needs.
type AccountLookup interface {
	Exists(code string) bool
}

// ResolvePostings filters imported postings against the chart and a known
// project list. Postings against an unknown account are skipped and
// counted; postings naming an unknown project are kept with the project
// cleared, and the project is counted.
func ResolvePostings(postings []model.Posting, accounts AccountLookup, projects []string) ([]model.Posting, ResolveReport) {
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p] = true
	}

	var report ResolveReport
	unknownAccts := make(map[string]bool)
	unknownProjects := make(map[string]bool)

	var kept []model.Posting
	for _, p := range postings {
		if !accounts.Exists(p.AccountCode) {
			report.SkippedPostings++
			unknownAccts[p.AccountCode] = true
			continue
		}
		if p.Project != "" && !known[p.Project] {
			unknownProjects[p.Project] = true
			p.Project = ""
		}
		kept = append(kept, p)
	}

	report.UnknownAccounts = sortedKeys(unknownAccts)
	report.UnknownProjects = sortedKeys(unknownProjects)
	return kept, report
}

// VerifyChart checks parent/child links in an imported chart: every
// parent_code must resolve, and a child's category should match its
// parent's. Violations are reported, not fixed; consumers assume matching
// categories but the chart is accepted as supplied.
func VerifyChart(accounts []model.Account) ResolveReport {
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}

	var report ResolveReport
	orphans := make(map[string]bool)
	clashes := make(map[string]bool)

	for _, a := range accounts {
		if a.ParentCode == "" {
			continue
		}
		parent, ok := byCode[a.ParentCode]
		if !ok {
			orphans[a.Code] = true
			continue
		}
		if parent.Category != a.Category {
			clashes[a.Code] = true
		}
	}

	report.OrphanAccounts = sortedKeys(orphans)
	report.CategoryClashes = sortedKeys(clashes)
	return report
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
