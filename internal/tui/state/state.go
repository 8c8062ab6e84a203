// Package state holds pure list-geometry helpers for the TUI, kept free of
// bubbletea types so they test without a terminal.
package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 8
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) slice of totalRows that keeps the
// cursor near the middle of a viewport of the given height.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// CycleIndex steps through a ring of n options from the element at current,
// returning the next index in direction. An empty ring yields -1; a current
// value outside the ring enters at the edge matching the direction.
func CycleIndex(current, n, direction int) int {
	if n <= 0 {
		return -1
	}
	if current < 0 || current >= n {
		if direction < 0 {
			return n - 1
		}
		return 0
	}
	next := current + direction
	if next < 0 {
		return n - 1
	}
	if next >= n {
		return 0
	}
	return next
}

// IndexOf returns the position of value in options, or -1.
func IndexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
