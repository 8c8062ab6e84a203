package archive

import (
	"sort"
	"strings"

	"broadsheet/internal/manifest"
)

const DefaultPageSize = 12

// Store owns the loaded issue list and the single Selection instance. Every
// mutating operation runs the same path before returning: reconcile a stale
// year/month against the availability index, recompute the index, re-run the
// filter pipeline, and reset pagination. Callers never have to remember the
// ordering themselves.
type Store struct {
	issues     []manifest.Issue
	papers     []string
	sel        Selection
	yearCounts map[string]int
	years      []string
	filtered   []manifest.Issue
	pageSize   int
	randFn     func(n int) int
}

// NewStore wraps a prepared (validated, date-ascending) issue list. randFn
// picks indices for the random initial focus and hero showcase; nil uses a
// process-seeded source.
func NewStore(issues []manifest.Issue, pageSize int, randFn func(n int) int) *Store {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if randFn == nil {
		randFn = defaultRand
	}
	s := &Store{
		issues:   append([]manifest.Issue(nil), issues...),
		sel:      newSelection(),
		pageSize: pageSize,
		randFn:   randFn,
	}
	s.papers = distinctPapers(s.issues)
	s.apply()
	return s
}

// apply is the one enforced code path behind every selection change.
func (s *Store) apply() {
	s.reconcile()
	s.yearCounts = YearCounts(s.issues, s.sel.Papers)
	s.years = AvailableYears(s.yearCounts)
	s.filtered = Sort(Apply(s.issues, s.sel), s.sel.Sort)
	s.sel.Page = 0
}

// reconcile clears a selected year (and month with it) that the current
// paper selection no longer covers, silently rather than filtering to zero.
func (s *Store) reconcile() {
	if s.sel.Year == "" {
		return
	}
	counts := YearCounts(s.issues, s.sel.Papers)
	if counts[s.sel.Year] == 0 {
		s.sel.Year = ""
		s.sel.Month = ""
		return
	}
	if s.sel.Month != "" {
		months := MonthCounts(s.issues, s.sel.Papers, s.sel.Year)
		if months[s.sel.Month] == 0 {
			s.sel.Month = ""
		}
	}
}

// SetPapers replaces the paper selection outright. A set holding every known
// paper collapses to the unrestricted empty set so the two equivalent states
// stay canonical.
func (s *Store) SetPapers(papers map[string]struct{}) {
	next := make(map[string]struct{}, len(papers))
	for p := range papers {
		next[p] = struct{}{}
	}
	if len(next) == len(s.papers) {
		next = map[string]struct{}{}
	}
	s.sel.Papers = next
	s.apply()
}

// TogglePaper flips one paper in or out of the selection. Toggling while
// unrestricted first expands to the full set, then removes the paper.
func (s *Store) TogglePaper(title string) {
	if len(s.sel.Papers) == 0 {
		s.sel.Papers = make(map[string]struct{}, len(s.papers))
		for _, p := range s.papers {
			s.sel.Papers[p] = struct{}{}
		}
	}
	if _, ok := s.sel.Papers[title]; ok {
		delete(s.sel.Papers, title)
	} else {
		s.sel.Papers[title] = struct{}{}
	}
	if len(s.sel.Papers) == len(s.papers) {
		s.sel.Papers = map[string]struct{}{}
	}
	s.apply()
}

// SelectAllPapers restores the unrestricted paper selection.
func (s *Store) SelectAllPapers() {
	s.sel.Papers = map[string]struct{}{}
	s.apply()
}

// SetYear selects a year; selecting the already-selected year clears it.
// Either way the month is cleared.
func (s *Store) SetYear(year string) {
	if year == s.sel.Year {
		s.sel.Year = ""
	} else {
		s.sel.Year = year
	}
	s.sel.Month = ""
	s.apply()
}

// SetMonth selects a month within the selected year; re-selecting clears it.
// Without a year the call is a no-op.
func (s *Store) SetMonth(month string) {
	if s.sel.Year == "" {
		return
	}
	if month == s.sel.Month {
		s.sel.Month = ""
	} else {
		s.sel.Month = month
	}
	s.apply()
}

// SetSearch stores the trimmed free-text query. Debouncing is the caller's
// concern; the store applies immediately.
func (s *Store) SetSearch(query string) {
	s.sel.Search = strings.TrimSpace(query)
	s.apply()
}

// SetSort switches the active sort order and re-runs the pipeline.
func (s *Store) SetSort(order SortOrder) {
	s.sel.Sort = order
	s.apply()
}

// Reset clears year, month, and search, restores all papers, and returns to
// the first page. The sort order survives a reset.
func (s *Store) Reset() {
	s.sel.Papers = map[string]struct{}{}
	s.sel.Year = ""
	s.sel.Month = ""
	s.sel.Search = ""
	s.apply()
}

// RandomFocus points the year/month selection at a randomly chosen issue so
// the first view is a populated slice of the archive.
func (s *Store) RandomFocus() {
	if len(s.issues) == 0 {
		return
	}
	issue := s.issues[s.randFn(len(s.issues))]
	s.sel.Year = issue.Year()
	s.sel.Month = issue.Month()
	s.apply()
}

// NextPage reveals the next pagination window. Advancing past the last page
// is a no-op.
func (s *Store) NextPage() bool {
	if !HasMore(len(s.filtered), s.pageSize, s.sel.Page) {
		return false
	}
	s.sel.Page++
	return true
}

// Selection returns a copy of the current filter state.
func (s *Store) Selection() Selection { return s.sel.clone() }

// Issues returns a copy of the full loaded issue list; the store's own copy
// is never handed out for mutation.
func (s *Store) Issues() []manifest.Issue {
	return append([]manifest.Issue(nil), s.issues...)
}

// Papers returns every distinct paper title, sorted.
func (s *Store) Papers() []string { return s.papers }

// Filtered returns the filtered, sorted issue list.
func (s *Store) Filtered() []manifest.Issue { return s.filtered }

// Visible returns the issues revealed so far: pages 0 through the current
// page, matching infinite-scroll accumulation.
func (s *Store) Visible() []manifest.Issue {
	_, end := PageWindow(len(s.filtered), s.pageSize, s.sel.Page)
	return s.filtered[:end]
}

// PageItems returns only the current page's window, for append-mode renders.
func (s *Store) PageItems() []manifest.Issue {
	start, end := PageWindow(len(s.filtered), s.pageSize, s.sel.Page)
	return s.filtered[start:end]
}

// HasMore reports whether issues remain beyond the revealed pages.
func (s *Store) HasMore() bool {
	return HasMore(len(s.filtered), s.pageSize, s.sel.Page)
}

// PageCount returns the number of pages in the filtered list.
func (s *Store) PageCount() int { return PageCount(len(s.filtered), s.pageSize) }

// PageSize returns the fixed pagination window size.
func (s *Store) PageSize() int { return s.pageSize }

// AvailableYears lists years with issues under the current paper selection.
func (s *Store) AvailableYears() []string { return s.years }

// YearCount returns the issue count for a year under the paper selection.
func (s *Store) YearCount(year string) int { return s.yearCounts[year] }

// AvailableMonths lists months of the selected year with issues under the
// current paper selection.
func (s *Store) AvailableMonths() []string {
	return AvailableMonths(MonthCounts(s.issues, s.sel.Papers, s.sel.Year))
}

// MonthCount returns the issue count for a month of the selected year under
// the paper selection.
func (s *Store) MonthCount(month string) int {
	return MonthCounts(s.issues, s.sel.Papers, s.sel.Year)[month]
}

// PaperCount returns the number of issues a paper contributes to the archive.
func (s *Store) PaperCount(title string) int {
	n := 0
	for _, issue := range s.issues {
		if issue.Title == title {
			n++
		}
	}
	return n
}

func distinctPapers(issues []manifest.Issue) []string {
	seen := make(map[string]struct{})
	for _, issue := range issues {
		seen[issue.Title] = struct{}{}
	}
	papers := make([]string, 0, len(seen))
	for p := range seen {
		papers = append(papers, p)
	}
	sort.Strings(papers)
	return papers
}
