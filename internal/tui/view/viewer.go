package view

import (
	"fmt"
	"strings"

	tuitheme "broadsheet/internal/tui/theme"
)

type ViewerChromeParams struct {
	Title     string
	Date      string
	PageIndex int
	PageCount int
	Zoom      float64
	Width     int
}

// RenderViewerChrome draws the viewer's header line: paper, date, page
// position, and the zoom factor when zoomed in.
func RenderViewerChrome(p ViewerChromeParams, th tuitheme.Theme) string {
	zoomLabel := ""
	if p.Zoom > 1 {
		zoomLabel = fmt.Sprintf("  %.2fx", p.Zoom)
	}
	label := fmt.Sprintf("%s · %s  page %d/%d%s", p.Title, p.Date, p.PageIndex+1, p.PageCount, zoomLabel)
	return th.ViewerChrom.Render(truncateRunes(label, p.Width-2))
}

// RenderThumbStrip draws the page-position strip shown when thumbnails are
// toggled on: one numbered slot per page with the current page highlighted.
func RenderThumbStrip(pageCount, current, width int, th tuitheme.Theme) string {
	if pageCount <= 0 {
		return ""
	}
	slots := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		label := fmt.Sprintf("%d", i+1)
		if i == current {
			slots = append(slots, th.YearActive.Render("▣"+label))
		} else {
			slots = append(slots, th.YearPill.Render("□"+label))
		}
	}
	return truncateANSI(strings.Join(slots, " "), width)
}

// PlaceholderPage stands in for a page whose image failed to render. Asset
// failures stay local to the page; they never escalate.
func PlaceholderPage(ref, reason string, th tuitheme.Theme) string {
	lines := []string{
		"",
		"   ┌──────────────────────────────┐",
		"   │     page image unavailable   │",
		"   └──────────────────────────────┘",
		"",
		"   " + truncateRunes(ref, 70),
	}
	if reason != "" {
		lines = append(lines, "   "+truncateRunes(reason, 70))
	}
	return th.EmptyState.Render(strings.Join(lines, "\n"))
}
