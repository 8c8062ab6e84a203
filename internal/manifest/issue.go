package manifest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Issue is a single digitized newspaper issue as described by the manifest.
// Date keeps the raw YYYY-MM-DD string; all filtering and grouping works on
// string prefixes so ordering matches chronology without any timezone math.
type Issue struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	IssueThumb string   `json:"issue_thumb"`
	PagePaths  []string `json:"page_paths,omitempty"`
}

// Year returns the 4-digit year prefix of the issue date.
func (i Issue) Year() string {
	if len(i.Date) < 4 {
		return ""
	}
	return i.Date[:4]
}

// Month returns the 2-digit month component of the issue date.
func (i Issue) Month() string {
	if len(i.Date) < 7 {
		return ""
	}
	return i.Date[5:7]
}

// Validate reports whether the issue carries every required manifest field
// and a well-formed date.
func (i Issue) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("issue has no id")
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("issue %s has no title", i.ID)
	}
	if strings.TrimSpace(i.IssueThumb) == "" {
		return fmt.Errorf("issue %s has no thumbnail", i.ID)
	}
	if err := validateDate(i.Date); err != nil {
		return fmt.Errorf("issue %s: %w", i.ID, err)
	}
	return nil
}

func validateDate(date string) error {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return fmt.Errorf("date %q is not YYYY-MM-DD", date)
	}
	for _, pos := range []int{0, 1, 2, 3, 5, 6, 8, 9} {
		if date[pos] < '0' || date[pos] > '9' {
			return fmt.Errorf("date %q is not YYYY-MM-DD", date)
		}
	}
	return nil
}

// Prepare validates issues, drops those outside the inclusive year range, and
// sorts the survivors ascending by date string. Issues failing validation are
// skipped rather than failing the whole load; a manifest with zero usable
// issues is an error.
func Prepare(issues []Issue, yearFrom, yearTo int) ([]Issue, error) {
	kept := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Validate() != nil {
			continue
		}
		year, err := strconv.Atoi(issue.Year())
		if err != nil {
			continue
		}
		if year < yearFrom || year > yearTo {
			continue
		}
		kept = append(kept, issue)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("manifest has no usable issues between %d and %d", yearFrom, yearTo)
	}
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].Date < kept[b].Date
	})
	return kept, nil
}
