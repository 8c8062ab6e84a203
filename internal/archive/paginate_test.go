package archive

import "testing"

func TestPageCount(t *testing.T) {
	cases := []struct {
		n, pageSize, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{24, 12, 2},
		{25, 12, 3},
	}
	for _, tc := range cases {
		if got := PageCount(tc.n, tc.pageSize); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.n, tc.pageSize, got, tc.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		name               string
		n, pageSize, page  int
		wantStart, wantEnd int
	}{
		{"first page", 25, 12, 0, 0, 12},
		{"middle page", 25, 12, 1, 12, 24},
		{"last partial page", 25, 12, 2, 24, 25},
		{"exact multiple last page", 24, 12, 1, 12, 24},
		{"beyond last is empty", 25, 12, 3, 25, 25},
		{"empty list", 0, 12, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := PageWindow(tc.n, tc.pageSize, tc.page)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Fatalf("PageWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tc.n, tc.pageSize, tc.page, start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestHasMore(t *testing.T) {
	if !HasMore(25, 12, 0) {
		t.Fatalf("expected more after page 0 of 25")
	}
	if !HasMore(25, 12, 1) {
		t.Fatalf("expected more after page 1 of 25")
	}
	if HasMore(25, 12, 2) {
		t.Fatalf("expected no more after the last page")
	}
	if HasMore(12, 12, 0) {
		t.Fatalf("a single full page has no more")
	}
}
