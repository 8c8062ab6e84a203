package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"broadsheet/internal/archive"
	"broadsheet/internal/manifest"
	"broadsheet/internal/tui/actions"
	"broadsheet/internal/tui/platform"
	"broadsheet/internal/tui/state"
	"broadsheet/internal/viewer"
)

type mode int

const (
	modeIntro mode = iota
	modeGrid
	modePapers
	modeViewer
	modeHelp
)

type Model struct {
	service   actions.Service
	store     *archive.Store
	cache     *viewer.Cache
	prober    viewer.Prober
	assetRoot string
	pageSize  int
	randFn    func(n int) int

	mode        mode
	prevMode    mode
	cursor      int
	paperCursor int

	search     textinput.Model
	searchSeq  int
	searchOpen bool

	spin    spinner.Model
	loading bool
	loadErr error
	offline bool

	hero []manifest.Issue

	defaultSort   archive.SortOrder
	thumbsVisible bool

	session        *viewer.Session
	discovering    bool
	pendingIssueID string
	pendingIndex   int
	currentIssue   manifest.Issue
	pageView       string
	pageErr        string

	status   string
	statusID int
	width    int
	height   int

	openURLFn func(string) error
	copyURLFn func(string) error

	cacheLoadDuration time.Duration
	cacheLoadedIssues int
	initialLoadDone   bool
	initialLoadFailed bool
	initialLoadTime   time.Duration
}

// Options configures a Model beyond its service.
type Options struct {
	Cached         []manifest.Issue
	IntroDismissed bool
	AssetRoot      string
	PageSize       int
	Prober         viewer.Prober
	// SortOrder and ThumbnailsVisible restore preferences saved in a
	// previous session.
	SortOrder         archive.SortOrder
	ThumbnailsVisible bool
	// RandFn overrides the pseudo-random source for the initial focus and
	// hero showcase; nil keeps the process-seeded default.
	RandFn func(n int) int
}

func NewModel(service actions.Service, opts Options) Model {
	search := textinput.New()
	search.Placeholder = "search title or date"
	search.CharLimit = 80
	search.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	prober := opts.Prober
	if prober == nil {
		prober = viewer.NewHTTPProber(nil)
	}

	m := Model{
		service:       service,
		cache:         viewer.NewCache(),
		prober:        prober,
		assetRoot:     opts.AssetRoot,
		pageSize:      opts.PageSize,
		randFn:        opts.RandFn,
		mode:          modeIntro,
		search:        search,
		spin:          spin,
		defaultSort:   opts.SortOrder,
		thumbsVisible: opts.ThumbnailsVisible,
		openURLFn:     platform.OpenURLInBrowser,
		copyURLFn:     platform.CopyURLToClipboard,
	}
	if opts.IntroDismissed {
		m.mode = modeGrid
	}
	if len(opts.Cached) > 0 {
		m.buildStore(opts.Cached)
		m.offline = true
	}
	if service != nil {
		m.loading = true
	}
	return m
}

func (m *Model) SetStartupCacheStats(d time.Duration, issues int) {
	m.cacheLoadDuration = d
	m.cacheLoadedIssues = issues
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(m.spin.Tick, actions.LoadArchiveCmd(m.service, "init"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.discovering {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case actions.ArchiveLoadedMsg:
		m.loading = false
		m.offline = false
		m.loadErr = nil
		m.buildStore(msg.Issues)
		if msg.Source == "init" {
			m.initialLoadDone = true
			m.initialLoadTime = msg.Duration
		}
		return m, nil

	case actions.ArchiveLoadErrorMsg:
		m.loading = false
		if msg.Source == "init" {
			m.initialLoadDone = true
			m.initialLoadFailed = true
			m.initialLoadTime = msg.Duration
		}
		if m.store == nil && len(msg.Cached) > 0 {
			m.buildStore(msg.Cached)
			m.offline = true
			m.status = "Offline: showing cached archive"
			m.statusID++
			return m, actions.ClearStatusCmd(m.statusID, 5*time.Second)
		}
		if m.store == nil {
			m.loadErr = msg.Err
			return m, nil
		}
		m.status = "Reload failed: " + msg.Err.Error()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 5*time.Second)

	case actions.PagesDiscoveredMsg:
		if !m.discovering || msg.IssueID != m.pendingIssueID {
			return m, nil
		}
		m.discovering = false
		m.session = viewer.NewSession(m.pendingIndex, msg.Pages)
		m.session.Thumbnails = m.thumbsVisible
		m.mode = modeViewer
		return m, m.showPageCmd()

	case actions.PageRenderedMsg:
		if msg.Zoom == 1 {
			m.cache.Put(msg.Ref, msg.Preview)
		}
		if m.session != nil && msg.Ref == m.session.Current() && msg.Zoom == m.session.Zoom {
			m.pageView = msg.Preview
			m.pageErr = ""
		}
		return m, nil

	case actions.PageRenderErrorMsg:
		m.cache.Fail(msg.Ref)
		if m.session != nil && msg.Ref == m.session.Current() {
			m.pageErr = msg.Err.Error()
		}
		return m, nil

	case actions.SearchDebounceMsg:
		if msg.Seq != m.searchSeq || m.store == nil {
			return m, nil
		}
		m.store.SetSearch(msg.Query)
		m.replaceRender()
		return m, nil

	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil

	case actions.PrefSaveErrorMsg:
		m.status = "Could not save " + msg.Pref + " preference"
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)

	case actions.OpenURLSuccessMsg:
		m.status = msg.Status
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)

	case actions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.mode == modeIntro {
		m.mode = modeGrid
		if m.service == nil {
			return m, nil
		}
		return m, actions.DismissIntroCmd(m.service)
	}

	if m.searchOpen {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "?":
		if m.mode == modeHelp {
			m.mode = m.prevMode
		} else {
			m.prevMode = m.mode
			m.mode = modeHelp
		}
		return m, nil
	}

	switch m.mode {
	case modeHelp:
		switch msg.String() {
		case "esc", "q":
			m.mode = m.prevMode
		}
		return m, nil
	case modeViewer:
		return m.handleViewerKey(msg)
	case modePapers:
		return m.handlePapersKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		if m.service == nil {
			return m, nil
		}
		m.loading = true
		m.loadErr = nil
		m.status = ""
		return m, tea.Batch(m.spin.Tick, actions.LoadArchiveCmd(m.service, "manual"))
	}

	if m.store == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.cursor = state.ClampCursor(m.cursor-1, len(m.store.Visible()))
	case "down", "j":
		return m.moveCursorDown()
	case "pgup", "ctrl+b":
		m.cursor = state.ClampCursor(m.cursor-state.PageStep(m.height, m.status != ""), len(m.store.Visible()))
	case "pgdown", "ctrl+f":
		m.cursor = state.ClampCursor(m.cursor+state.PageStep(m.height, m.status != ""), len(m.store.Visible()))
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = state.ClampCursor(len(m.store.Visible())-1, len(m.store.Visible()))
	case "n":
		if m.store.NextPage() {
			// Append-mode render: the showcase stays put.
			m.cursor = state.ClampCursor(m.cursor, len(m.store.Visible()))
		} else {
			m.status = "No more issues"
			m.statusID++
			return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)
		}
	case "/":
		m.searchOpen = true
		m.search.SetValue(m.store.Selection().Search)
		m.search.Focus()
		return m, textinput.Blink
	case "p":
		m.mode = modePapers
		m.paperCursor = 0
	case "y":
		m.cycleYear(1)
	case "Y":
		m.cycleYear(-1)
	case "m":
		m.cycleMonth(1)
	case "M":
		m.cycleMonth(-1)
	case "s":
		next := m.store.Selection().Sort.Next()
		m.store.SetSort(next)
		m.defaultSort = next
		m.replaceRender()
		if m.service != nil {
			return m, actions.SaveSortOrderCmd(m.service, int(next))
		}
	case "R":
		m.store.Reset()
		m.search.SetValue("")
		m.replaceRender()
	case "enter":
		return m.openViewer(m.cursor)
	}
	return m, nil
}

// moveCursorDown walks the grid; hitting the bottom with more pages behaves
// like the scroll-intersection trigger and reveals the next page.
func (m Model) moveCursorDown() (tea.Model, tea.Cmd) {
	visible := m.store.Visible()
	if m.cursor >= len(visible)-1 {
		if m.store.NextPage() {
			m.cursor = state.ClampCursor(m.cursor+1, len(m.store.Visible()))
		}
		return m, nil
	}
	m.cursor++
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Invalidate any pending debounce tick so the discarded draft
		// never reaches the store.
		m.searchSeq++
		m.searchOpen = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searchOpen = false
		m.search.Blur()
		if m.store != nil {
			m.searchSeq++
			m.store.SetSearch(m.search.Value())
			m.replaceRender()
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, actions.DebounceSearchCmd(m.searchSeq, m.search.Value()))
	}
	return m, cmd
}

func (m Model) handlePapersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	papers := m.store.Papers()
	switch msg.String() {
	case "esc", "p", "q":
		m.mode = modeGrid
	case "up", "k":
		m.paperCursor = state.ClampCursor(m.paperCursor-1, len(papers))
	case "down", "j":
		m.paperCursor = state.ClampCursor(m.paperCursor+1, len(papers))
	case " ", "space":
		if m.paperCursor < len(papers) {
			m.store.TogglePaper(papers[m.paperCursor])
			m.replaceRender()
		}
	case "enter":
		// Solo select: restrict the archive to the paper under the cursor.
		if m.paperCursor < len(papers) {
			m.store.SetPapers(map[string]struct{}{papers[m.paperCursor]: {}})
			m.replaceRender()
		}
	case "a":
		m.store.SelectAllPapers()
		m.replaceRender()
	}
	return m, nil
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		m.mode = modeGrid
		return m, nil
	}
	switch msg.String() {
	case "esc", "backspace", "q":
		m.closeViewer()
		return m, nil
	case "right", "l":
		if m.session.NavigatePage(1) {
			return m, m.showPageCmd()
		}
	case "left", "h":
		if m.session.NavigatePage(-1) {
			return m, m.showPageCmd()
		}
	case "]":
		return m.navigateIssue(1)
	case "[":
		return m.navigateIssue(-1)
	case "+", "=":
		m.session.ZoomIn()
		return m, m.renderCurrentCmd()
	case "-":
		m.session.ZoomOut()
		return m, m.renderCurrentCmd()
	case "0":
		m.session.ResetZoom()
		return m, m.renderCurrentCmd()
	case "t":
		m.session.ToggleThumbnails()
		m.thumbsVisible = m.session.Thumbnails
		if m.service != nil {
			return m, actions.SaveThumbnailsCmd(m.service, m.thumbsVisible)
		}
	case "o":
		url, err := platform.ValidateAssetURL(m.session.Current())
		if err != nil {
			m.status = err.Error()
			m.statusID++
			return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)
		}
		return m, actions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
	}
	return m, nil
}

func (m *Model) buildStore(issues []manifest.Issue) {
	m.store = archive.NewStore(issues, m.pageSize, m.randFn)
	if m.defaultSort != archive.SortDateAsc {
		m.store.SetSort(m.defaultSort)
	}
	m.store.RandomFocus()
	m.replaceRender()
}

// replaceRender is the full re-render reaction to a filter change: back to
// the first page window and a fresh showcase pick.
func (m *Model) replaceRender() {
	m.cursor = 0
	m.hero = m.store.Hero()
}

func (m *Model) cycleYear(direction int) {
	years := m.store.AvailableYears()
	if len(years) == 0 {
		return
	}
	sel := m.store.Selection()
	idx := state.CycleIndex(state.IndexOf(years, sel.Year), len(years), direction)
	if sel.Year == "" {
		// No selection yet: enter the ring at the edge.
		m.store.SetYear(years[idx])
	} else if years[idx] == sel.Year {
		m.store.SetYear(sel.Year) // single year, toggle off
	} else {
		m.store.SetYear(years[idx])
	}
	m.replaceRender()
}

func (m *Model) cycleMonth(direction int) {
	sel := m.store.Selection()
	if sel.Year == "" {
		return
	}
	months := m.store.AvailableMonths()
	if len(months) == 0 {
		return
	}
	idx := state.CycleIndex(state.IndexOf(months, sel.Month), len(months), direction)
	if sel.Month != "" && months[idx] == sel.Month {
		m.store.SetMonth(sel.Month) // single month, toggle off
	} else {
		m.store.SetMonth(months[idx])
	}
	m.replaceRender()
}

func (m Model) openViewer(index int) (tea.Model, tea.Cmd) {
	visible := m.store.Visible()
	if index < 0 || index >= len(visible) {
		return m, nil
	}
	issue := visible[index]
	m.discovering = true
	m.pendingIssueID = issue.ID
	m.pendingIndex = index
	m.currentIssue = issue
	m.pageView = ""
	m.pageErr = ""
	return m, tea.Batch(m.spin.Tick, actions.DiscoverPagesCmd(issue, m.assetRoot, m.prober))
}

// navigateIssue re-opens the viewer fully on the adjacent issue in the
// displayed list: fresh discovery, zoom reset with the new session.
func (m Model) navigateIssue(delta int) (tea.Model, tea.Cmd) {
	next := m.session.IssueIndex + delta
	if next < 0 || next >= len(m.store.Visible()) {
		return m, nil
	}
	m.session = nil
	m.mode = modeGrid
	m.cursor = next
	return m.openViewer(next)
}

func (m *Model) closeViewer() {
	m.session = nil
	m.pageView = ""
	m.pageErr = ""
	m.mode = modeGrid
}

// showPageCmd displays the current page, from the cache when it is already
// warm, and always schedules the preload window behind it.
func (m *Model) showPageCmd() tea.Cmd {
	ref := m.session.Current()
	if ref == "" {
		return nil
	}
	m.pageErr = ""
	preload := actions.PreloadPagesCmd(m.cache, m.session.PreloadRefs(), m.contentWidth())
	if m.session.Zoom == 1 {
		if preview, ok := m.cache.Get(ref); ok {
			m.pageView = preview
			return preload
		}
	}
	m.pageView = ""
	if m.session.Zoom == 1 && !m.cache.StartLoad(ref) {
		// Already in flight from a preload; the rendered message will land.
		return preload
	}
	return tea.Batch(actions.RenderPageCmd(ref, m.contentWidth(), m.session.Zoom), preload)
}

// renderCurrentCmd re-renders the displayed page after a zoom change.
func (m *Model) renderCurrentCmd() tea.Cmd {
	ref := m.session.Current()
	if ref == "" {
		return nil
	}
	if m.session.Zoom == 1 {
		if preview, ok := m.cache.Get(ref); ok {
			m.pageView = preview
			return nil
		}
	}
	m.pageView = ""
	return actions.RenderPageCmd(ref, m.contentWidth(), m.session.Zoom)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width - 4
}

func (m Model) footer() string {
	if m.store == nil {
		return "No archive loaded"
	}
	sel := m.store.Selection()
	papers := "all papers"
	if len(sel.Papers) > 0 {
		papers = fmt.Sprintf("%d papers", len(sel.Papers))
	}
	focus := "all years"
	if sel.Year != "" {
		focus = sel.Year
		if sel.Month != "" {
			focus += "-" + sel.Month
		}
	}
	connectivity := ""
	if m.offline {
		connectivity = " | offline"
	}
	return fmt.Sprintf("Papers: %s | Focus: %s | Sort: %s | Showing: %d/%d | Pages: %d%s",
		papers, focus, sel.Sort, len(m.store.Visible()), len(m.store.Filtered()), m.store.PageCount(), connectivity)
}

func (m Model) startupMetrics() string {
	cachePart := "cache n/a"
	if m.cacheLoadDuration > 0 || m.cacheLoadedIssues > 0 {
		cachePart = fmt.Sprintf("cache %dms (%d issues)", m.cacheLoadDuration.Milliseconds(), m.cacheLoadedIssues)
	}
	loadPart := "initial load pending"
	if m.initialLoadDone {
		if m.initialLoadFailed {
			loadPart = fmt.Sprintf("initial load failed in %dms", m.initialLoadTime.Milliseconds())
		} else {
			loadPart = fmt.Sprintf("initial load %dms", m.initialLoadTime.Milliseconds())
		}
	}
	return cachePart + ", " + loadPart
}
