package viewer

import (
	"context"
	"testing"

	"broadsheet/internal/manifest"
)

// fakeProber answers probes from a fixed set of existing refs and records the
// order it was asked in.
type fakeProber struct {
	existing map[string]bool
	probed   []string
}

func (p *fakeProber) Exists(_ context.Context, ref string) bool {
	p.probed = append(p.probed, ref)
	return p.existing[ref]
}

func TestDiscoverPages_ExplicitListUsedVerbatim(t *testing.T) {
	issue := manifest.Issue{
		ID:         "x1",
		Title:      "Paper X",
		Date:       "1915-03-01",
		IssueThumb: "paper-x/x1/thumb.jpg",
		PagePaths:  []string{"paper-x/x1/p1.jpg", "https://cdn.example.com/p2.jpg"},
	}
	prober := &fakeProber{}

	pages := DiscoverPages(context.Background(), issue, "assets", prober)

	want := []string{"assets/paper-x/x1/p1.jpg", "https://cdn.example.com/p2.jpg"}
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, want %d", len(pages), len(want))
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("page %d = %q, want %q", i, pages[i], want[i])
		}
	}
	if len(prober.probed) != 0 {
		t.Errorf("explicit list must not probe, probed %v", prober.probed)
	}
}

func TestDiscoverPages_SequentialProbeStopsAtFirstGap(t *testing.T) {
	issue := manifest.Issue{
		ID:         "x1",
		Title:      "Paper X",
		Date:       "1915-03-01",
		IssueThumb: "paper-x/x1/thumb.jpg",
	}
	prober := &fakeProber{existing: map[string]bool{
		"assets/paper-x/x1/page_01.jpg": true,
		"assets/paper-x/x1/page_02.jpg": true,
		// page_03 missing
		"assets/paper-x/x1/page_04.jpg": true,
	}}

	pages := DiscoverPages(context.Background(), issue, "assets", prober)

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2: %v", len(pages), pages)
	}
	if pages[0] != "assets/paper-x/x1/page_01.jpg" || pages[1] != "assets/paper-x/x1/page_02.jpg" {
		t.Errorf("unexpected pages: %v", pages)
	}
	// The probe after the gap must never happen: page 4 existing cannot
	// resurrect the missing page 3.
	if len(prober.probed) != 3 {
		t.Errorf("expected 3 probes, got %d: %v", len(prober.probed), prober.probed)
	}
}

func TestDiscoverPages_ProbeCappedAtMax(t *testing.T) {
	issue := manifest.Issue{
		ID:         "x1",
		Title:      "Paper X",
		Date:       "1915-03-01",
		IssueThumb: "paper-x/x1/thumb.jpg",
	}
	var probes int
	yes := proberFunc(func(_ context.Context, _ string) bool {
		probes++
		return true
	})

	pages := DiscoverPages(context.Background(), issue, "assets", yes)

	if len(pages) != MaxProbePages {
		t.Fatalf("got %d pages, want %d", len(pages), MaxProbePages)
	}
	if probes != MaxProbePages {
		t.Errorf("expected %d probes, got %d", MaxProbePages, probes)
	}
}

type proberFunc func(ctx context.Context, ref string) bool

func (f proberFunc) Exists(ctx context.Context, ref string) bool { return f(ctx, ref) }

func TestDiscoverPages_FallsBackToThumbnail(t *testing.T) {
	issue := manifest.Issue{
		ID:         "x1",
		Title:      "Paper X",
		Date:       "1915-03-01",
		IssueThumb: "paper-x/x1/thumb.jpg",
	}
	prober := &fakeProber{}

	pages := DiscoverPages(context.Background(), issue, "assets", prober)

	if len(pages) != 1 || pages[0] != "assets/paper-x/x1/thumb.jpg" {
		t.Fatalf("expected thumbnail fallback, got %v", pages)
	}
}
