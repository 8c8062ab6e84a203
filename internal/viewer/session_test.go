package viewer

import (
	"math"
	"testing"
)

func newTestSession(pages int) *Session {
	refs := make([]string, pages)
	for i := range refs {
		refs[i] = "page" + string(rune('a'+i))
	}
	return NewSession(0, refs)
}

func TestNavigatePage_ClampsWithoutWraparound(t *testing.T) {
	s := newTestSession(3)

	if s.NavigatePage(-1) {
		t.Error("backward from first page should not change")
	}
	if !s.NavigatePage(1) || s.PageIndex != 1 {
		t.Errorf("expected page 1, got %d", s.PageIndex)
	}
	if !s.NavigatePage(5) || s.PageIndex != 2 {
		t.Errorf("forward past end should clamp to last, got %d", s.PageIndex)
	}
	if s.NavigatePage(1) {
		t.Error("forward from last page should not change")
	}
	if !s.NavigatePage(-2) || s.PageIndex != 0 {
		t.Errorf("expected page 0, got %d", s.PageIndex)
	}
}

func TestNavigatePage_SinglePage(t *testing.T) {
	s := newTestSession(1)
	if s.NavigatePage(1) || s.NavigatePage(-1) {
		t.Error("single-page issue should never navigate")
	}
}

func TestCurrent(t *testing.T) {
	s := NewSession(2, []string{"a", "b"})
	if got := s.Current(); got != "a" {
		t.Errorf("Current = %q, want a", got)
	}
	s.NavigatePage(1)
	if got := s.Current(); got != "b" {
		t.Errorf("Current = %q, want b", got)
	}

	var nilSession *Session
	if got := nilSession.Current(); got != "" {
		t.Errorf("nil session Current = %q, want empty", got)
	}
}

func TestPreloadRefs(t *testing.T) {
	s := NewSession(0, []string{"a", "b", "c", "d"})

	refs := s.PreloadRefs()
	if len(refs) != 2 || refs[0] != "b" || refs[1] != "c" {
		t.Errorf("preload from first page = %v", refs)
	}

	s.PageIndex = 2
	refs = s.PreloadRefs()
	if len(refs) != 1 || refs[0] != "d" {
		t.Errorf("preload near end = %v", refs)
	}

	s.PageIndex = 3
	if refs = s.PreloadRefs(); refs != nil {
		t.Errorf("preload at last page = %v, want none", refs)
	}
}

func TestZoomClamps(t *testing.T) {
	s := newTestSession(1)

	if s.Zoom != zoomMin {
		t.Fatalf("initial zoom = %v", s.Zoom)
	}

	for i := 0; i < 10; i++ {
		s.ZoomIn()
	}
	if s.Zoom != zoomMax {
		t.Errorf("zoom in should clamp at %v, got %v", zoomMax, s.Zoom)
	}

	for i := 0; i < 10; i++ {
		s.ZoomOut()
	}
	if s.Zoom != zoomMin {
		t.Errorf("zoom out should clamp at %v, got %v", zoomMin, s.Zoom)
	}

	s.ZoomIn()
	s.ZoomIn()
	if math.Abs(s.Zoom-zoomStep*zoomStep) > 1e-9 {
		t.Errorf("two steps in = %v, want %v", s.Zoom, zoomStep*zoomStep)
	}
	s.ResetZoom()
	if s.Zoom != zoomMin {
		t.Errorf("reset zoom = %v", s.Zoom)
	}
}

func TestToggleThumbnails(t *testing.T) {
	s := newTestSession(1)
	s.ToggleThumbnails()
	if !s.Thumbnails {
		t.Error("expected thumbnails on")
	}
	s.ToggleThumbnails()
	if s.Thumbnails {
		t.Error("expected thumbnails off")
	}
}
