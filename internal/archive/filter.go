package archive

import (
	"sort"
	"strings"

	"broadsheet/internal/manifest"
)

// Apply runs the filter pipeline: the conjunction of the paper, year, month,
// and search predicates over the full issue list. The result keeps the input
// order; sorting happens separately at render time.
func Apply(issues []manifest.Issue, sel Selection) []manifest.Issue {
	out := make([]manifest.Issue, 0, len(issues))
	for _, issue := range issues {
		if Matches(issue, sel) {
			out = append(out, issue)
		}
	}
	return out
}

// Matches reports whether a single issue passes every active predicate.
func Matches(issue manifest.Issue, sel Selection) bool {
	return matchesPaper(issue, sel.Papers) &&
		matchesYearMonth(issue, sel.Year, sel.Month) &&
		matchesSearch(issue, sel.Search)
}

// matchesPaper treats the empty set as "no restriction", so an empty
// selection and the full paper set filter identically.
func matchesPaper(issue manifest.Issue, papers map[string]struct{}) bool {
	if len(papers) == 0 {
		return true
	}
	_, ok := papers[issue.Title]
	return ok
}

// matchesYearMonth applies string-prefix date matching. A month without a
// year is inert.
func matchesYearMonth(issue manifest.Issue, year, month string) bool {
	if year == "" {
		return true
	}
	if month == "" {
		return strings.HasPrefix(issue.Date, year)
	}
	return strings.HasPrefix(issue.Date, year+"-"+month)
}

func matchesSearch(issue manifest.Issue, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(issue.Title), q) {
		return true
	}
	return strings.Contains(issue.Date, q)
}

// Sort orders issues by the active sort, stably: issues with equal keys keep
// their relative position from the date-ascending manifest order.
func Sort(issues []manifest.Issue, order SortOrder) []manifest.Issue {
	out := append([]manifest.Issue(nil), issues...)
	switch order {
	case SortDateDesc:
		sort.SliceStable(out, func(a, b int) bool { return out[a].Date > out[b].Date })
	case SortTitleAlpha:
		sort.SliceStable(out, func(a, b int) bool {
			return strings.ToLower(out[a].Title) < strings.ToLower(out[b].Title)
		})
	default:
		sort.SliceStable(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	}
	return out
}
