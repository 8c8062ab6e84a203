package archive

import (
	"testing"

	"broadsheet/internal/manifest"
)

func manyIssues(year string, n int) []manifest.Issue {
	issues := make([]manifest.Issue, n)
	for i := range issues {
		issues[i] = manifest.Issue{
			ID:    string(rune('a'+i)) + year,
			Title: "Paper X",
			Date:  year + "-03-01",
		}
	}
	return issues
}

func TestHero_NeverExceedsPool(t *testing.T) {
	s := NewStore(testIssues(), 12, func(int) int { return 0 })
	s.SetYear("1920") // pool of one

	hero := s.Hero()
	if len(hero) != 1 {
		t.Fatalf("expected 1 hero pick from a pool of 1, got %d", len(hero))
	}
}

func TestHero_PicksAreDistinct(t *testing.T) {
	calls := 0
	s := NewStore(manyIssues("1915", 10), 12, func(n int) int {
		calls++
		return calls % n
	})

	hero := s.Hero()
	if len(hero) < 3 || len(hero) > 6 {
		t.Fatalf("expected 3-6 picks, got %d", len(hero))
	}
	seen := make(map[string]struct{})
	for _, issue := range hero {
		if _, dup := seen[issue.ID]; dup {
			t.Fatalf("duplicate hero pick %s", issue.ID)
		}
		seen[issue.ID] = struct{}{}
	}
}

func TestHero_PrefersFocusedPool(t *testing.T) {
	issues := append(manyIssues("1915", 5), manyIssues("1920", 5)...)
	s := NewStore(issues, 12, func(int) int { return 0 })
	s.SetYear("1915")

	for _, issue := range s.Hero() {
		if issue.Year() != "1915" {
			t.Fatalf("hero pick %s is outside the focused year", issue.ID)
		}
	}
}

func TestHero_UsesWholeFilteredSetWithoutFocus(t *testing.T) {
	issues := append(manyIssues("1915", 3), manyIssues("1920", 3)...)
	s := NewStore(issues, 12, func(int) int { return 0 })

	hero := s.Hero()
	if len(hero) == 0 {
		t.Fatalf("expected hero picks from the unfocused filtered set")
	}
}

func TestHero_EmptyFilteredYieldsNothing(t *testing.T) {
	s := NewStore(testIssues(), 12, func(int) int { return 0 })
	s.SetSearch("no such paper")
	if hero := s.Hero(); hero != nil {
		t.Fatalf("expected no hero picks for an empty result, got %d", len(hero))
	}
}
