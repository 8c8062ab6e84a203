// Package viewer manages an open issue's page set: discovery of scanned page
// images, current-page navigation, zoom, and the preload memo cache.
package viewer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"broadsheet/internal/manifest"
)

const (
	// MaxProbePages bounds sequential page probing for issues without an
	// explicit page list.
	MaxProbePages = 50
	// ProbeTimeout caps each individual existence probe.
	ProbeTimeout = 500 * time.Millisecond
	// PreloadPages is how many pages past the current one get preloaded.
	PreloadPages = 2
)

// Prober answers whether a page image exists at a resolved reference. It is
// injected so discovery can be tested without real image loads.
type Prober interface {
	Exists(ctx context.Context, ref string) bool
}

// DiscoverPages resolves the ordered page set for an issue. An explicit
// page_paths list is used verbatim. Otherwise page-numbered paths are probed
// sequentially, 1 through MaxProbePages, and the contiguous successful
// prefix wins: the first failure or timeout ends discovery, and a later
// page's existence cannot resurrect an earlier gap. Zero discovered pages
// fall back to the issue thumbnail as a single page.
func DiscoverPages(ctx context.Context, issue manifest.Issue, assetRoot string, prober Prober) []string {
	if len(issue.PagePaths) > 0 {
		pages := make([]string, len(issue.PagePaths))
		for i, path := range issue.PagePaths {
			pages[i] = manifest.ResolveAsset(assetRoot, path)
		}
		return pages
	}

	var pages []string
	for n := 1; n <= MaxProbePages; n++ {
		ref := manifest.ResolveAsset(assetRoot, probePath(issue, n))
		probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
		ok := prober.Exists(probeCtx, ref)
		cancel()
		if !ok {
			break
		}
		pages = append(pages, ref)
	}

	if len(pages) == 0 {
		return []string{manifest.ResolveAsset(assetRoot, issue.IssueThumb)}
	}
	return pages
}

// probePath guesses the page-numbered image path next to the thumbnail.
func probePath(issue manifest.Issue, page int) string {
	base := issue.IssueThumb
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[:idx]
	} else {
		base = issue.ID
	}
	return fmt.Sprintf("%s/page_%02d.jpg", base, page)
}

// HTTPProber checks remote page existence with a HEAD request, falling back
// to a one-byte ranged GET for hosts that reject HEAD.
type HTTPProber struct {
	http *http.Client
}

func NewHTTPProber(httpClient *http.Client) *HTTPProber {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: ProbeTimeout}
	}
	return &HTTPProber{http: httpClient}
}

func (p *HTTPProber) Exists(ctx context.Context, ref string) bool {
	if ok, decided := p.tryMethod(ctx, http.MethodHead, ref); decided {
		return ok
	}
	ok, _ := p.tryMethod(ctx, http.MethodGet, ref)
	return ok
}

func (p *HTTPProber) tryMethod(ctx context.Context, method, ref string) (exists, decided bool) {
	req, err := http.NewRequestWithContext(ctx, method, ref, nil)
	if err != nil {
		return false, true
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false, true
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusMethodNotAllowed && method == http.MethodHead:
		return false, false
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, true
	case resp.StatusCode == http.StatusPartialContent:
		return true, true
	default:
		return false, true
	}
}

// FileProber checks page existence on a local asset root.
type FileProber struct{}

func (FileProber) Exists(_ context.Context, ref string) bool {
	info, err := os.Stat(ref)
	return err == nil && !info.IsDir()
}
