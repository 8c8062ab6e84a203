package archive

import (
	"sort"

	"broadsheet/internal/manifest"
)

// YearCounts groups the paper-restricted issues by 4-character year prefix.
// Year, month, and search selections are deliberately ignored: the year
// picker must not shrink in reaction to its own selection.
func YearCounts(issues []manifest.Issue, papers map[string]struct{}) map[string]int {
	counts := make(map[string]int)
	for _, issue := range issues {
		if !matchesPaper(issue, papers) {
			continue
		}
		if year := issue.Year(); year != "" {
			counts[year]++
		}
	}
	return counts
}

// AvailableYears lists the years with at least one issue under the current
// paper selection, ascending.
func AvailableYears(counts map[string]int) []string {
	years := make([]string, 0, len(counts))
	for year, n := range counts {
		if n > 0 {
			years = append(years, year)
		}
	}
	sort.Strings(years)
	return years
}

// MonthCounts groups the paper-restricted issues of a single year by their
// 2-character month component.
func MonthCounts(issues []manifest.Issue, papers map[string]struct{}, year string) map[string]int {
	counts := make(map[string]int)
	if year == "" {
		return counts
	}
	for _, issue := range issues {
		if !matchesPaper(issue, papers) {
			continue
		}
		if issue.Year() != year {
			continue
		}
		if month := issue.Month(); month != "" {
			counts[month]++
		}
	}
	return counts
}

// AvailableMonths lists the months of year with at least one issue, ascending.
func AvailableMonths(counts map[string]int) []string {
	months := make([]string, 0, len(counts))
	for month, n := range counts {
		if n > 0 {
			months = append(months, month)
		}
	}
	sort.Strings(months)
	return months
}
