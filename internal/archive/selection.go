// Package archive holds the browsing state for the issue collection: the
// current filter selection, the year/month availability index derived from
// it, and the filtered, sorted, paginated issue list. All mutation funnels
// through Store operations so reconciliation and re-filtering never get
// skipped.
package archive

type SortOrder int

const (
	SortDateAsc SortOrder = iota
	SortDateDesc
	SortTitleAlpha
)

func (o SortOrder) String() string {
	switch o {
	case SortDateAsc:
		return "date ↑"
	case SortDateDesc:
		return "date ↓"
	case SortTitleAlpha:
		return "title"
	default:
		return "unknown"
	}
}

// Next cycles through the sort orders.
func (o SortOrder) Next() SortOrder {
	switch o {
	case SortDateAsc:
		return SortDateDesc
	case SortDateDesc:
		return SortTitleAlpha
	default:
		return SortDateAsc
	}
}

// Selection is the current filter state. An empty Papers set means
// "no restriction"; filtering by the empty set and by the full paper set
// yields identical results. Month only applies while Year is set.
type Selection struct {
	Papers map[string]struct{}
	Year   string
	Month  string
	Search string
	Sort   SortOrder
	Page   int
}

func newSelection() Selection {
	return Selection{Papers: map[string]struct{}{}}
}

func (s Selection) clone() Selection {
	papers := make(map[string]struct{}, len(s.Papers))
	for p := range s.Papers {
		papers[p] = struct{}{}
	}
	s.Papers = papers
	return s
}

// PaperSelected reports whether title passes the paper predicate display-wise:
// with no restriction every paper counts as selected.
func (s Selection) PaperSelected(title string) bool {
	if len(s.Papers) == 0 {
		return true
	}
	_, ok := s.Papers[title]
	return ok
}
