package archive

import (
	"reflect"
	"testing"

	"broadsheet/internal/manifest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testIssues(), 2, func(int) int { return 0 })
}

func TestStore_YearToggleLaw(t *testing.T) {
	s := newTestStore(t)
	before := s.Filtered()

	s.SetYear("1915")
	if s.Selection().Year != "1915" {
		t.Fatalf("expected year 1915 selected")
	}

	s.SetYear("1915")
	if s.Selection().Year != "" {
		t.Fatalf("re-selecting the year must clear it, got %q", s.Selection().Year)
	}
	after := s.Filtered()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("toggle did not restore the pre-selection filtered set")
	}
}

func TestStore_SelectingYearClearsMonth(t *testing.T) {
	s := newTestStore(t)
	s.SetYear("1915")
	s.SetMonth("03")
	if s.Selection().Month != "03" {
		t.Fatalf("expected month 03 selected")
	}

	s.SetYear("1920")
	if s.Selection().Month != "" {
		t.Fatalf("selecting a year must clear the month, got %q", s.Selection().Month)
	}
}

func TestStore_MonthWithoutYearIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.SetMonth("03")
	if s.Selection().Month != "" {
		t.Fatalf("month without year must not stick, got %q", s.Selection().Month)
	}
}

func TestStore_MonthToggle(t *testing.T) {
	s := newTestStore(t)
	s.SetYear("1915")
	s.SetMonth("03")
	s.SetMonth("03")
	if s.Selection().Month != "" {
		t.Fatalf("re-selecting the month must clear it")
	}
	if s.Selection().Year != "1915" {
		t.Fatalf("month toggle must not touch the year")
	}
}

func TestStore_AvailabilityCountMatchesPipeline(t *testing.T) {
	s := newTestStore(t)
	for _, year := range s.AvailableYears() {
		s.SetYear(year)
		filtered := s.Filtered()
		if len(filtered) != s.YearCount(year) {
			t.Fatalf("year %s: availability count %d but pipeline yielded %d", year, s.YearCount(year), len(filtered))
		}
		for _, issue := range filtered {
			if issue.Year() != year {
				t.Fatalf("year %s: pipeline leaked %s", year, issue.Date)
			}
		}
		s.SetYear(year) // toggle off before the next round
	}
}

func TestStore_PaperDeselectionClearsStaleYear(t *testing.T) {
	s := newTestStore(t)
	s.SetYear("1915")

	// Only Paper X published in 1915; removing it strands the year.
	s.TogglePaper("Paper X")

	if s.Selection().Year != "" {
		t.Fatalf("stale year selection must be cleared, got %q", s.Selection().Year)
	}
	years := s.AvailableYears()
	want := []string{"1920", "1922"}
	if !reflect.DeepEqual(years, want) {
		t.Fatalf("expected availability %v after deselection, got %v", want, years)
	}
	if len(s.Filtered()) == 0 {
		t.Fatalf("grid must revert to remaining papers, not go empty")
	}
}

func TestStore_Idempotence(t *testing.T) {
	s := newTestStore(t)
	s.SetYear("1915")
	first := append([]manifest.Issue(nil), s.Filtered()...)

	s.SetSearch(s.Selection().Search)
	second := s.Filtered()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-applying the same selection changed the result")
	}
}

func TestStore_TogglePaperCollapsesFullSet(t *testing.T) {
	s := newTestStore(t)
	s.TogglePaper("Paper X")
	if len(s.Selection().Papers) != 2 {
		t.Fatalf("expected 2 papers after removing one of three, got %d", len(s.Selection().Papers))
	}

	s.TogglePaper("Paper X")
	if len(s.Selection().Papers) != 0 {
		t.Fatalf("restoring the last paper must collapse to the unrestricted set")
	}
}

func TestStore_SetPapersPartialSet(t *testing.T) {
	s := newTestStore(t)
	s.SetPapers(map[string]struct{}{"Paper X": {}})

	sel := s.Selection()
	if len(sel.Papers) != 1 || !sel.PaperSelected("Paper X") {
		t.Fatalf("expected only Paper X selected, got %+v", sel.Papers)
	}
	for _, issue := range s.Filtered() {
		if issue.Title != "Paper X" {
			t.Fatalf("pipeline leaked %s", issue.Title)
		}
	}
}

func TestStore_SetPapersFullSetCollapses(t *testing.T) {
	s := newTestStore(t)
	full := make(map[string]struct{})
	for _, p := range s.Papers() {
		full[p] = struct{}{}
	}

	s.SetPapers(full)
	if len(s.Selection().Papers) != 0 {
		t.Fatalf("the full set must collapse to the unrestricted empty set, got %+v", s.Selection().Papers)
	}
	if len(s.Filtered()) != len(testIssues()) {
		t.Fatalf("full-set selection must filter like no restriction")
	}
}

func TestStore_SetPapersEmptySetIsUnrestricted(t *testing.T) {
	s := newTestStore(t)
	s.SetPapers(map[string]struct{}{"Paper X": {}})

	s.SetPapers(map[string]struct{}{})
	if len(s.Selection().Papers) != 0 {
		t.Fatalf("empty set must clear the restriction")
	}
	if len(s.Filtered()) != len(testIssues()) {
		t.Fatalf("unrestricted selection must pass every issue")
	}
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore(t)
	s.SetYear("1915")
	s.SetMonth("03")
	s.SetSearch("paper")
	s.TogglePaper("Paper Z")
	s.SetSort(SortTitleAlpha)

	s.Reset()
	sel := s.Selection()
	if sel.Year != "" || sel.Month != "" || sel.Search != "" || len(sel.Papers) != 0 {
		t.Fatalf("reset left residue: %+v", sel)
	}
	if sel.Page != 0 {
		t.Fatalf("reset must return to page 0, got %d", sel.Page)
	}
	if sel.Sort != SortTitleAlpha {
		t.Fatalf("reset must not touch the sort order")
	}
}

func TestStore_RandomFocusYieldsPopulatedView(t *testing.T) {
	s := NewStore(testIssues(), 12, func(int) int { return 2 })
	s.RandomFocus()
	sel := s.Selection()
	if sel.Year == "" || sel.Month == "" {
		t.Fatalf("random focus must select a year and month, got %+v", sel)
	}
	if len(s.Filtered()) == 0 {
		t.Fatalf("random focus must land on a populated slice")
	}
}

func TestStore_VisibleAccumulatesPages(t *testing.T) {
	s := newTestStore(t)
	if len(s.Visible()) != 2 {
		t.Fatalf("expected first window of 2, got %d", len(s.Visible()))
	}
	if !s.NextPage() {
		t.Fatalf("expected a second page")
	}
	if len(s.Visible()) != 4 {
		t.Fatalf("expected 4 visible after next page, got %d", len(s.Visible()))
	}
	if s.NextPage() {
		t.Fatalf("advancing past the last page must be a no-op")
	}
}

func TestStore_IssuesReturnsCopy(t *testing.T) {
	s := newTestStore(t)

	leaked := s.Issues()
	leaked[0].Title = "Defaced"

	if s.Issues()[0].Title == "Defaced" {
		t.Fatalf("mutating the returned slice must not reach the store")
	}
	for _, issue := range s.Filtered() {
		if issue.Title == "Defaced" {
			t.Fatalf("pipeline saw the external mutation")
		}
	}
}

func TestStore_FilterChangeResetsPage(t *testing.T) {
	s := newTestStore(t)
	s.NextPage()
	if s.Selection().Page != 1 {
		t.Fatalf("expected page 1")
	}
	s.SetYear("1915")
	if s.Selection().Page != 0 {
		t.Fatalf("filter change must reset pagination, got page %d", s.Selection().Page)
	}
}
