package viewer

const (
	zoomStep = 1.25
	zoomMin  = 1.0
	zoomMax  = 3.0
)

// Session is the state of one open viewer: discarded when the viewer closes,
// rebuilt from scratch when navigating to an adjacent issue.
type Session struct {
	IssueIndex int
	Pages      []string
	PageIndex  int
	Zoom       float64
	Thumbnails bool
}

// NewSession opens a viewer on the issue at index within the displayed list,
// with its discovered page set.
func NewSession(issueIndex int, pages []string) *Session {
	return &Session{
		IssueIndex: issueIndex,
		Pages:      pages,
		Zoom:       zoomMin,
	}
}

// Current returns the reference of the displayed page.
func (s *Session) Current() string {
	if s == nil || s.PageIndex < 0 || s.PageIndex >= len(s.Pages) {
		return ""
	}
	return s.Pages[s.PageIndex]
}

// NavigatePage moves by delta pages, clamped to bounds with no wraparound.
// It reports whether the displayed page changed.
func (s *Session) NavigatePage(delta int) bool {
	next := s.PageIndex + delta
	if next < 0 {
		next = 0
	}
	if next > len(s.Pages)-1 {
		next = len(s.Pages) - 1
	}
	if next == s.PageIndex || next < 0 {
		return false
	}
	s.PageIndex = next
	return true
}

// PreloadRefs returns the page references to warm after the current page:
// the next PreloadPages pages, clamped to the page set.
func (s *Session) PreloadRefs() []string {
	var refs []string
	for i := s.PageIndex + 1; i <= s.PageIndex+PreloadPages && i < len(s.Pages); i++ {
		refs = append(refs, s.Pages[i])
	}
	return refs
}

// ZoomIn steps the zoom factor up multiplicatively, clamped to the maximum.
func (s *Session) ZoomIn() {
	s.Zoom *= zoomStep
	if s.Zoom > zoomMax {
		s.Zoom = zoomMax
	}
}

// ZoomOut steps the zoom factor down, clamped to the minimum.
func (s *Session) ZoomOut() {
	s.Zoom /= zoomStep
	if s.Zoom < zoomMin {
		s.Zoom = zoomMin
	}
}

// ResetZoom restores the unzoomed scale.
func (s *Session) ResetZoom() { s.Zoom = zoomMin }

// ToggleThumbnails flips the thumbnail strip.
func (s *Session) ToggleThumbnails() { s.Thumbnails = !s.Thumbnails }
