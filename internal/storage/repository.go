package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"broadsheet/internal/manifest"
)

// IntroDismissedKey is the version-stamped preference key recording that the
// introductory overlay has been dismissed. Absence means "show the overlay".
const IntroDismissedKey = "intro_dismissed_v2"

// Preference keys carried across sessions.
const (
	SortOrderKey        = "sort_order"
	ViewerThumbnailsKey = "viewer_thumbnails"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS issues (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  date TEXT NOT NULL,
  issue_thumb TEXT NOT NULL,
  page_paths TEXT,
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) CheckWritable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES ('_write_check', '1')
		 ON CONFLICT(key) DO UPDATE SET value='1'`)
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// SaveIssues replaces the cached copy of the manifest.
func (r *Repository) SaveIssues(ctx context.Context, issues []manifest.Issue) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM issues`); err != nil {
		return fmt.Errorf("clear issue cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO issues (id, title, date, issue_thumb, page_paths, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, issue := range issues {
		var pagePaths any
		if len(issue.PagePaths) > 0 {
			encoded, err := json.Marshal(issue.PagePaths)
			if err != nil {
				return fmt.Errorf("encode page paths for %s: %w", issue.ID, err)
			}
			pagePaths = string(encoded)
		}
		if _, err := stmt.ExecContext(ctx, issue.ID, issue.Title, issue.Date, issue.IssueThumb, pagePaths, now); err != nil {
			return fmt.Errorf("save issue %s: %w", issue.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListIssues returns the cached manifest, ascending by date string.
func (r *Repository) ListIssues(ctx context.Context) ([]manifest.Issue, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, date, issue_thumb, page_paths
FROM issues
ORDER BY date ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []manifest.Issue
	for rows.Next() {
		var issue manifest.Issue
		var pagePaths sql.NullString
		if err := rows.Scan(&issue.ID, &issue.Title, &issue.Date, &issue.IssueThumb, &pagePaths); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		if pagePaths.Valid && pagePaths.String != "" {
			if err := json.Unmarshal([]byte(pagePaths.String), &issue.PagePaths); err != nil {
				return nil, fmt.Errorf("decode page paths for %s: %w", issue.ID, err)
			}
		}
		issues = append(issues, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return issues, nil
}

// GetPreference returns the stored value for key, or ok=false when unset.
func (r *Repository) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query preference %s: %w", key, err)
	}
	return value, true, nil
}

// SetPreference upserts a preference value.
func (r *Repository) SetPreference(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, value)
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}
