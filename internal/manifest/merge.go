package manifest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// PaperConfig points a paper slug at the repository hosting its scanned
// assets. Asset references inside that paper's issues are rewritten to the
// raw content base of the repository during a merge.
type PaperConfig struct {
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
}

type papersFile struct {
	Papers map[string]PaperConfig `yaml:"papers"`
}

// LoadPaperConfig reads the papers.yaml mapping of slug to repository. A
// missing file yields an empty config, not an error.
func LoadPaperConfig(path string) (map[string]PaperConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]PaperConfig{}, nil
		}
		return nil, fmt.Errorf("read paper config: %w", err)
	}
	var parsed papersFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse paper config: %w", err)
	}
	if parsed.Papers == nil {
		parsed.Papers = map[string]PaperConfig{}
	}
	return parsed.Papers, nil
}

// PaperManifest is the per-paper manifest emitted by a merge.
type PaperManifest struct {
	ManifestVersion int     `json:"manifest_version"`
	Title           string  `json:"title"`
	Issues          []Issue `json:"issues"`
}

// PaperIndexEntry describes one paper in the merged papers index.
type PaperIndexEntry struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	IssueCount     int    `json:"issue_count"`
	ManifestPath   string `json:"manifest_path"`
	RemoteManifest string `json:"remote_manifest,omitempty"`
}

// PaperIndex is the top-level index across all per-paper manifests.
type PaperIndex struct {
	ManifestVersion int               `json:"manifest_version"`
	Papers          []PaperIndexEntry `json:"papers"`
}

// MergeResult holds the outputs of merging per-format manifests.
type MergeResult struct {
	Issues   []Issue
	PerPaper map[string][]Issue
	Index    PaperIndex
}

// Merge combines issue lists from any number of per-format manifests into a
// single date-sorted list, rewriting asset references to each paper's remote
// base when one is configured, and derives per-paper manifests plus an index.
func Merge(sources [][]Issue, papers map[string]PaperConfig) (MergeResult, error) {
	var all []Issue
	for _, src := range sources {
		all = append(all, src...)
	}
	if len(all) == 0 {
		return MergeResult{}, fmt.Errorf("no issues found in any manifest")
	}

	sort.SliceStable(all, func(a, b int) bool { return all[a].Date < all[b].Date })

	perPaper := make(map[string][]Issue)
	merged := make([]Issue, 0, len(all))
	for _, issue := range all {
		slug := Slugify(issue.Title)
		base := remoteBase(papers[slug])
		rewritten := rewriteIssueAssets(issue, base, slug)
		merged = append(merged, rewritten)
		perPaper[slug] = append(perPaper[slug], rewritten)
	}

	index := PaperIndex{ManifestVersion: 1}
	for slug, issues := range perPaper {
		entry := PaperIndexEntry{
			Slug:         slug,
			Title:        issues[0].Title,
			IssueCount:   len(issues),
			ManifestPath: "manifests/" + slug + ".json",
		}
		if base := remoteBase(papers[slug]); base != "" {
			entry.RemoteManifest = base + "/manifests/paper-manifest.json"
		}
		index.Papers = append(index.Papers, entry)
	}
	sort.Slice(index.Papers, func(a, b int) bool {
		return index.Papers[a].Title < index.Papers[b].Title
	})

	return MergeResult{Issues: merged, PerPaper: perPaper, Index: index}, nil
}

// WriteMergeResult writes the unified manifest, per-paper manifests, and the
// papers index under outDir.
func WriteMergeResult(outDir string, result MergeResult) error {
	if err := writeJSON(filepath.Join(outDir, "manifest.json"), result.Issues); err != nil {
		return err
	}

	manifestsDir := filepath.Join(outDir, "manifests")
	if err := os.MkdirAll(manifestsDir, 0o755); err != nil {
		return fmt.Errorf("create manifests dir: %w", err)
	}

	for slug, issues := range result.PerPaper {
		payload := PaperManifest{
			ManifestVersion: 1,
			Title:           issues[0].Title,
			Issues:          issues,
		}
		if err := writeJSON(filepath.Join(manifestsDir, slug+".json"), payload); err != nil {
			return err
		}
	}

	return writeJSON(filepath.Join(manifestsDir, "index.json"), result.Index)
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Slugify makes a filesystem-safe slug from a newspaper title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, "+", "-")
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func remoteBase(cfg PaperConfig) string {
	if cfg.Repo == "" {
		return ""
	}
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	return strings.TrimRight("https://raw.githubusercontent.com/"+cfg.Repo+"/"+branch, "/")
}

func rewriteIssueAssets(issue Issue, base, slug string) Issue {
	out := issue
	out.IssueThumb = toRemotePath(base, issue.IssueThumb, slug)
	if len(issue.PagePaths) > 0 {
		out.PagePaths = make([]string, len(issue.PagePaths))
		for i, path := range issue.PagePaths {
			out.PagePaths[i] = toRemotePath(base, path, slug)
		}
	}
	return out
}

func toRemotePath(base, original, slug string) string {
	if original == "" || base == "" {
		return original
	}
	if strings.HasPrefix(original, "http://") || strings.HasPrefix(original, "https://") {
		return original
	}
	normalized := strings.TrimLeft(original, "/")
	if slug != "" {
		prefix := strings.ToLower(strings.Trim(slug, "/")) + "/"
		if strings.HasPrefix(strings.ToLower(normalized), prefix) {
			normalized = normalized[len(prefix):]
		}
	}
	segments := strings.Split(normalized, "/")
	for i, part := range segments {
		segments[i] = url.PathEscape(part)
	}
	return base + "/" + strings.Join(segments, "/")
}
