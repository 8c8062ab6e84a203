package tui

import (
	"fmt"
	"strings"

	"broadsheet/internal/tui/state"
	tuitheme "broadsheet/internal/tui/theme"
	"broadsheet/internal/tui/view"
)

var th = tuitheme.Default()

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Broadsheet Archive"))
	b.WriteString("\n")

	switch m.mode {
	case modeIntro:
		b.WriteString(m.introView())
	case modeHelp:
		b.WriteString("Help (? to close)\n\n")
		b.WriteString(m.helpView())
	case modeViewer:
		b.WriteString(m.viewerView())
	case modePapers:
		b.WriteString(m.papersView())
	default:
		b.WriteString(m.gridView())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) introView() string {
	lines := []string{
		"",
		"  A reading room for digitized historical newspapers.",
		"",
		"  Browse two decades of scanned issues: filter by paper, year,",
		"  and month, search titles and dates, and page through every",
		"  issue's scans right in the terminal.",
		"",
		th.MetaValue.Render("  Press any key to enter the archive."),
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) gridView() string {
	b := &strings.Builder{}
	b.WriteString("j/k: move | enter: open | n: more | /: search | p: papers | y/m: year/month | s: sort | R: reset | r: reload | ?: help | q: quit\n\n")

	if m.loadErr != nil && m.store == nil {
		b.WriteString(th.ErrorState.Render("Could not load the archive manifest."))
		b.WriteString("\n")
		b.WriteString(th.MetaValue.Render(m.loadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString("Press r to retry.\n")
		return b.String()
	}
	if m.store == nil {
		if m.loading {
			b.WriteString(m.spin.View() + " Loading archive...\n")
		} else {
			b.WriteString("No archive loaded.\n")
		}
		return b.String()
	}

	sel := m.store.Selection()
	b.WriteString(th.Section.Render("Years  "))
	b.WriteString(view.RenderYearStrip(m.store.AvailableYears(), m.store.YearCount, sel.Year, m.contentWidth()-8, th))
	b.WriteString("\n")
	if sel.Year != "" {
		months := m.store.AvailableMonths()
		strip := view.RenderMonthStrip(months, m.store.MonthCount, sel.Month, m.contentWidth()-8, th)
		if strip != "" {
			b.WriteString(th.Section.Render("Months "))
			b.WriteString(strip)
			b.WriteString("\n")
		}
	}

	if m.searchOpen {
		b.WriteString("Search: " + m.search.View() + "\n")
	} else if sel.Search != "" {
		b.WriteString("Search: " + th.MetaValue.Render(sel.Search) + "  (/ to edit)\n")
	}
	b.WriteString("\n")

	visible := m.store.Visible()
	if len(visible) == 0 {
		b.WriteString(th.EmptyState.Render("No issues match the current filters. Press R to reset."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.hero) > 0 {
		b.WriteString(th.Section.Render("Showcase"))
		b.WriteString("\n")
		for _, issue := range m.hero {
			b.WriteString(view.RenderHeroLine(issue, m.contentWidth(), th))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	listHeight := m.listHeight()
	start, end := state.CenteredWindow(len(visible), m.cursor, listHeight)
	for i := start; i < end; i++ {
		b.WriteString(view.RenderCardLine(view.CardLineParams{
			Issue:      visible[i],
			VisiblePos: i,
			Active:     i == m.cursor,
			Width:      m.contentWidth(),
		}, th))
		b.WriteString("\n")
	}

	if m.store.HasMore() {
		remaining := len(m.store.Filtered()) - len(visible)
		b.WriteString(th.MetaValue.Render(fmt.Sprintf("  … n: load %d more", remaining)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) papersView() string {
	b := &strings.Builder{}
	b.WriteString("space: toggle | enter: only this | a: all papers | esc: back\n\n")
	b.WriteString(th.Section.Render("Papers"))
	b.WriteString("\n")

	sel := m.store.Selection()
	for i, paper := range m.store.Papers() {
		b.WriteString(view.RenderPaperLine(paper, sel.PaperSelected(paper), i == m.paperCursor, m.store.PaperCount(paper), th))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewerView() string {
	b := &strings.Builder{}
	b.WriteString("h/l: pages | [ ]: prev/next issue | +/-/0: zoom | t: thumbnails | o: open in browser | esc: back\n\n")

	if m.discovering || m.session == nil {
		b.WriteString(m.spin.View() + " Discovering pages...\n")
		return b.String()
	}

	b.WriteString(view.RenderViewerChrome(view.ViewerChromeParams{
		Title:     m.currentIssue.Title,
		Date:      m.currentIssue.Date,
		PageIndex: m.session.PageIndex,
		PageCount: len(m.session.Pages),
		Zoom:      m.session.Zoom,
		Width:     m.contentWidth(),
	}, th))
	b.WriteString("\n")

	if m.session.Thumbnails {
		b.WriteString(view.RenderThumbStrip(len(m.session.Pages), m.session.PageIndex, m.contentWidth(), th))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.pageErr != "":
		b.WriteString(view.PlaceholderPage(m.session.Current(), m.pageErr, th))
		b.WriteString("\n")
	case m.pageView == "":
		b.WriteString(m.spin.View() + " Rendering page...\n")
	default:
		b.WriteString(m.pageView)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpView() string {
	lines := []string{
		"Grid:",
		"  j/k or arrows move, g/G jump top/bottom, pgup/pgdown jump page",
		"  moving past the bottom (or n) reveals the next page of issues",
		"Filters:",
		"  y/Y cycle available years, m/M months within the year",
		"  cycling onto the selected year or month clears it",
		"  p opens the paper picker, space toggles, enter solos, a restores all",
		"  / opens search over titles and dates, settles after a pause",
		"  s cycles sort (date ↑, date ↓, title), R resets all filters",
		"Viewer:",
		"  enter opens the issue under the cursor",
		"  h/l or arrows turn pages, [ ] jump to the adjacent issue",
		"  +/- zoom in steps, 0 resets, t toggles the thumbnail strip",
		"  o opens the page image in the browser",
		"Archive:",
		"  r reloads the manifest, q quits",
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) messagePanel() string {
	status := "-"
	if m.status != "" {
		status = m.status
	}
	stateLabel := th.StateIdle.Render("idle")
	if m.loading || m.discovering {
		stateLabel = th.StateLoad.Render("loading")
	}
	if m.loadErr != nil {
		stateLabel = th.StateWarn.Render("error")
	}
	return fmt.Sprintf("Status: %s | State: %s | Startup: %s", status, stateLabel, m.startupMetrics())
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 12
	}
	reserved := 10 + len(m.hero)
	h := m.height - reserved
	if h < 4 {
		h = 4
	}
	return h
}
