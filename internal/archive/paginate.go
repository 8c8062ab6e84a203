package archive

// PageCount returns ceil(n/pageSize) pages for a filtered list of length n.
func PageCount(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// PageWindow returns the half-open [start, end) index range of page within a
// list of length n. A page beyond the last yields an empty window.
func PageWindow(n, pageSize, page int) (start, end int) {
	if n <= 0 || pageSize <= 0 || page < 0 {
		return 0, 0
	}
	start = page * pageSize
	if start >= n {
		return n, n
	}
	end = start + pageSize
	if end > n {
		end = n
	}
	return start, end
}

// HasMore reports whether items remain beyond the currently revealed pages,
// i.e. whether the "load more" affordance should show.
func HasMore(n, pageSize, page int) bool {
	_, end := PageWindow(n, pageSize, page)
	return end < n
}
