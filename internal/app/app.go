package app

import (
	"context"
	"fmt"
	"strconv"

	"broadsheet/internal/manifest"
	"broadsheet/internal/storage"
)

type ManifestClient interface {
	Fetch(ctx context.Context, location string) ([]manifest.Issue, error)
}

type Repository interface {
	SaveIssues(ctx context.Context, issues []manifest.Issue) error
	ListIssues(ctx context.Context) ([]manifest.Issue, error)
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

// Service wires the manifest client and the local cache together for the TUI.
type Service struct {
	client   ManifestClient
	repo     Repository
	location string
	yearFrom int
	yearTo   int
}

func NewService(client ManifestClient, repo Repository, location string, yearFrom, yearTo int) *Service {
	return &Service{
		client:   client,
		repo:     repo,
		location: location,
		yearFrom: yearFrom,
		yearTo:   yearTo,
	}
}

// LoadArchive fetches the manifest, prepares it (validate, year range, sort),
// and refreshes the local cache. The cache write is best-effort: a stale
// cache never blocks a successful load.
func (s *Service) LoadArchive(ctx context.Context) ([]manifest.Issue, error) {
	raw, err := s.client.Fetch(ctx, s.location)
	if err != nil {
		return nil, err
	}
	issues, err := manifest.Prepare(raw, s.yearFrom, s.yearTo)
	if err != nil {
		return nil, err
	}
	if s.repo != nil {
		_ = s.repo.SaveIssues(ctx, issues)
	}
	return issues, nil
}

// ListCached returns the prepared cached manifest, used as an offline
// fallback when the fetch fails.
func (s *Service) ListCached(ctx context.Context) ([]manifest.Issue, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("no issue cache configured")
	}
	cached, err := s.repo.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issues from cache: %w", err)
	}
	return manifest.Prepare(cached, s.yearFrom, s.yearTo)
}

// IntroDismissed reports whether the introductory overlay was dismissed in a
// previous session. An unset key means "show the overlay".
func (s *Service) IntroDismissed(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	value, ok, err := s.repo.GetPreference(ctx, storage.IntroDismissedKey)
	if err != nil {
		return false, err
	}
	return ok && value == "1", nil
}

// DismissIntro records the overlay dismissal for future sessions.
func (s *Service) DismissIntro(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.SetPreference(ctx, storage.IntroDismissedKey, "1")
}

// SavedSortOrder returns the persisted sort order, or ok=false when no
// preference has been saved yet.
func (s *Service) SavedSortOrder(ctx context.Context) (int, bool, error) {
	if s.repo == nil {
		return 0, false, nil
	}
	value, ok, err := s.repo.GetPreference(ctx, storage.SortOrderKey)
	if err != nil || !ok {
		return 0, false, err
	}
	order, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, nil
	}
	return order, true, nil
}

// SaveSortOrder persists the active sort order across sessions.
func (s *Service) SaveSortOrder(ctx context.Context, order int) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.SetPreference(ctx, storage.SortOrderKey, strconv.Itoa(order))
}

// ThumbnailsVisible returns the persisted viewer thumbnail-strip visibility.
func (s *Service) ThumbnailsVisible(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	value, ok, err := s.repo.GetPreference(ctx, storage.ViewerThumbnailsKey)
	if err != nil {
		return false, err
	}
	return ok && value == "1", nil
}

// SaveThumbnailsVisible persists the viewer thumbnail-strip visibility.
func (s *Service) SaveThumbnailsVisible(ctx context.Context, visible bool) error {
	if s.repo == nil {
		return nil
	}
	value := "0"
	if visible {
		value = "1"
	}
	return s.repo.SetPreference(ctx, storage.ViewerThumbnailsKey, value)
}
