// Package actions defines the TUI's asynchronous commands and their result
// messages. All network and image work happens inside tea.Cmd closures; the
// model only ever mutates state in response to the messages defined here.
package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"broadsheet/internal/manifest"
	"broadsheet/internal/viewer"
)

type Service interface {
	LoadArchive(ctx context.Context) ([]manifest.Issue, error)
	ListCached(ctx context.Context) ([]manifest.Issue, error)
	DismissIntro(ctx context.Context) error
	SaveSortOrder(ctx context.Context, order int) error
	SaveThumbnailsVisible(ctx context.Context, visible bool) error
}

type ArchiveLoadedMsg struct {
	Issues   []manifest.Issue
	Duration time.Duration
	Source   string
}

type ArchiveLoadErrorMsg struct {
	Err      error
	Cached   []manifest.Issue
	Duration time.Duration
	Source   string
}

type PagesDiscoveredMsg struct {
	IssueID string
	Pages   []string
}

type PageRenderedMsg struct {
	Ref     string
	Preview string
	Zoom    float64
}

type PageRenderErrorMsg struct {
	Ref  string
	Err  error
	Zoom float64
}

type SearchDebounceMsg struct {
	Seq   int
	Query string
}

type ClearStatusMsg struct {
	ID int
}

// PrefSaveErrorMsg reports a failed preference write. Pref names the setting
// for the status line.
type PrefSaveErrorMsg struct {
	Pref string
	Err  error
}

type OpenURLSuccessMsg struct {
	Status string
}

type OpenURLErrorMsg struct {
	Err error
}

// SearchDebounce is the fixed settle delay between the last keystroke and
// the single filter run it coalesces into.
const SearchDebounce = 300 * time.Millisecond

// LoadArchiveCmd fetches and prepares the manifest. On failure it also
// attempts the cached copy so the model can degrade to offline browsing.
func LoadArchiveCmd(service Service, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		start := time.Now()

		issues, err := service.LoadArchive(ctx)
		if err != nil {
			cached, cacheErr := service.ListCached(ctx)
			if cacheErr != nil {
				cached = nil
			}
			return ArchiveLoadErrorMsg{Err: err, Cached: cached, Duration: time.Since(start), Source: source}
		}
		return ArchiveLoadedMsg{Issues: issues, Duration: time.Since(start), Source: source}
	}
}

// DiscoverPagesCmd resolves an issue's page set, probing sequentially when
// the manifest carries no explicit list.
func DiscoverPagesCmd(issue manifest.Issue, assetRoot string, prober viewer.Prober) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), viewer.MaxProbePages*viewer.ProbeTimeout)
		defer cancel()
		pages := viewer.DiscoverPages(ctx, issue, assetRoot, prober)
		return PagesDiscoveredMsg{IssueID: issue.ID, Pages: pages}
	}
}

// RenderPageCmd renders one page image for display. Unzoomed renders land in
// the cache as a side effect of the success message.
func RenderPageCmd(ref string, width int, zoom float64) tea.Cmd {
	return func() tea.Msg {
		preview, err := viewer.RenderPage(ref, width, zoom)
		if err != nil {
			return PageRenderErrorMsg{Ref: ref, Err: err, Zoom: zoom}
		}
		return PageRenderedMsg{Ref: ref, Preview: preview, Zoom: zoom}
	}
}

// PreloadPagesCmd warms the memo cache for the pages after the current one.
// Preloads are never cancelled; a render for a page the user has left still
// completes and lands in the cache.
func PreloadPagesCmd(cache *viewer.Cache, refs []string, width int) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(refs))
	for _, ref := range refs {
		if !cache.StartLoad(ref) {
			continue
		}
		cmds = append(cmds, RenderPageCmd(ref, width, 1))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// DebounceSearchCmd schedules the settled filter run for a keystroke burst.
// The model drops messages whose Seq is stale, so only the last keystroke's
// timer fires a pipeline run.
func DebounceSearchCmd(seq int, query string) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq, Query: query}
	})
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

// DismissIntroCmd persists the overlay dismissal flag.
func DismissIntroCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := service.DismissIntro(ctx); err != nil {
			return PrefSaveErrorMsg{Pref: "intro overlay", Err: err}
		}
		return nil
	}
}

// SaveSortOrderCmd persists the active sort order, fire-and-forget.
func SaveSortOrderCmd(service Service, order int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := service.SaveSortOrder(ctx, order); err != nil {
			return PrefSaveErrorMsg{Pref: "sort order", Err: err}
		}
		return nil
	}
}

// SaveThumbnailsCmd persists the viewer thumbnail-strip visibility.
func SaveThumbnailsCmd(service Service, visible bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := service.SaveThumbnailsVisible(ctx, visible); err != nil {
			return PrefSaveErrorMsg{Pref: "thumbnail strip", Err: err}
		}
		return nil
	}
}

// OpenURLCmd opens a page URL in the browser, falling back to the clipboard.
func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened page in browser"}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}
