package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"broadsheet/internal/manifest"
	tuitheme "broadsheet/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type CardLineParams struct {
	Issue      manifest.Issue
	VisiblePos int
	Active     bool
	Width      int
}

// RenderCardLine draws one issue card of the grid: cursor marker, position,
// paper title, and the raw date right-aligned. Date components come straight
// from the manifest string, never through a timezone-sensitive parse.
func RenderCardLine(p CardLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}

	prefix := fmt.Sprintf("  %s%3d. ", cursorMarker, p.VisiblePos+1)
	pageHint := ""
	if n := len(p.Issue.PagePaths); n > 0 {
		pageHint = fmt.Sprintf(" (%dp)", n)
	}
	dateLabel := "[" + p.Issue.Date + "]"

	available := p.Width - visibleLen(prefix) - visibleLen(pageHint) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}
	label := truncateRunes(strings.TrimSpace(p.Issue.Title), available)

	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(pageHint) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	line := prefix + th.CardTitle.Render(label) + pageHint + strings.Repeat(" ", gap) + th.CardDate.Render(dateLabel)
	return th.RenderActiveLine(p.Active, line)
}

// RenderHeroLine draws one showcase pick above the grid.
func RenderHeroLine(issue manifest.Issue, width int, th tuitheme.Theme) string {
	label := fmt.Sprintf("  ✦ %s · %s", issue.Title, issue.Date)
	return th.HeroTitle.Render(truncateRunes(label, width))
}

// RenderYearStrip draws the available years with counts, highlighting the
// selected one.
func RenderYearStrip(years []string, count func(string) int, selected string, width int, th tuitheme.Theme) string {
	if len(years) == 0 {
		return th.EmptyState.Render("no years available")
	}
	parts := make([]string, 0, len(years))
	for _, year := range years {
		label := fmt.Sprintf("%s(%d)", year, count(year))
		if year == selected {
			parts = append(parts, th.YearActive.Render("["+label+"]"))
		} else {
			parts = append(parts, th.YearPill.Render(label))
		}
	}
	return truncateANSI(strings.Join(parts, " "), width)
}

// RenderMonthStrip draws the selected year's available months with counts.
func RenderMonthStrip(months []string, count func(string) int, selected string, width int, th tuitheme.Theme) string {
	if len(months) == 0 {
		return ""
	}
	parts := make([]string, 0, len(months))
	for _, month := range months {
		label := fmt.Sprintf("%s(%d)", month, count(month))
		if month == selected {
			parts = append(parts, th.YearActive.Render("["+label+"]"))
		} else {
			parts = append(parts, th.YearPill.Render(label))
		}
	}
	return truncateANSI(strings.Join(parts, " "), width)
}

// RenderPaperLine draws one row of the papers picker.
func RenderPaperLine(title string, selected, active bool, count int, th tuitheme.Theme) string {
	marker := "[ ]"
	style := th.PaperOff
	if selected {
		marker = "[x]"
		style = th.PaperOn
	}
	cursorMarker := " "
	if active {
		cursorMarker = ">"
	}
	line := fmt.Sprintf("  %s %s %s (%d issues)", cursorMarker, marker, title, count)
	return th.RenderActiveLine(active, style.Render(line))
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

// truncateANSI hard-caps a styled strip without splitting escape codes; it
// falls back to the plain text when the styled form would overflow.
func truncateANSI(s string, width int) string {
	if width <= 0 || visibleLen(s) <= width {
		return s
	}
	return truncateRunes(stripANSIText(s), width)
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
