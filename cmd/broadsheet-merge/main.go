// broadsheet-merge combines per-format manifests (PDF and JP2 extractions)
// into the unified manifest.json the browser consumes, plus per-paper
// manifests and a papers index.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"broadsheet/internal/manifest"
)

func main() {
	webContent := flag.String("web-content", "web_content", "directory holding the per-format manifests and merge output")
	papersConfig := flag.String("papers", "config/papers.yaml", "papers.yaml mapping paper slugs to asset repositories")
	flag.Parse()

	papers, err := manifest.LoadPaperConfig(*papersConfig)
	if err != nil {
		log.Fatalf("paper config error: %v", err)
	}

	var sources [][]manifest.Issue

	// The PDF manifest may still live at the legacy manifest.json location.
	pdfIssues, pdfPath, err := readFirst(
		filepath.Join(*webContent, "manifest_pdf.json"),
		filepath.Join(*webContent, "manifest.json"),
	)
	if err != nil {
		log.Fatalf("read PDF manifest: %v", err)
	}
	if pdfPath == "" {
		fmt.Println("Warning: PDF manifest not found (checked manifest_pdf.json and legacy manifest.json)")
	} else {
		fmt.Printf("Loaded %d PDF issues from %s\n", len(pdfIssues), pdfPath)
		sources = append(sources, pdfIssues)
	}

	jp2Path := filepath.Join(*webContent, "manifest_jp2.json")
	jp2Issues, err := readManifest(jp2Path)
	switch {
	case os.IsNotExist(err):
		fmt.Println("Warning: manifest_jp2.json not found")
	case err != nil:
		log.Fatalf("read JP2 manifest: %v", err)
	default:
		fmt.Printf("Loaded %d JP2 issues\n", len(jp2Issues))
		sources = append(sources, jp2Issues)
	}

	result, err := manifest.Merge(sources, papers)
	if err != nil {
		log.Fatalf("merge error: %v", err)
	}
	if err := manifest.WriteMergeResult(*webContent, result); err != nil {
		log.Fatalf("write error: %v", err)
	}

	fmt.Printf("\nMerged %d issues across %d papers\n", len(result.Issues), len(result.Index.Papers))
	fmt.Printf("Date range: %s to %s\n", result.Issues[0].Date, result.Issues[len(result.Issues)-1].Date)
	for _, paper := range result.Index.Papers {
		fmt.Printf("  %s: %d\n", paper.Title, paper.IssueCount)
	}
	fmt.Printf("Unified manifest saved to %s\n", filepath.Join(*webContent, "manifest.json"))
}

func readFirst(paths ...string) ([]manifest.Issue, string, error) {
	for _, path := range paths {
		issues, err := readManifest(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return issues, path, nil
	}
	return nil, "", nil
}

func readManifest(path string) ([]manifest.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var issues []manifest.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return issues, nil
}
