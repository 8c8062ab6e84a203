package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetch_ParsesManifest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Fatalf("missing accept header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"x1","title":"Paper X","date":"1915-03-01","issue_thumb":"paper-x/1915-03-01/thumb.jpg","page_paths":["paper-x/1915-03-01/page_01.jpg"]}]`))
	}))
	defer ts.Close()

	c := NewClient(ts.Client())
	issues, err := c.Fetch(context.Background(), ts.URL+"/manifest.json")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Title != "Paper X" || len(issues[0].PagePaths) != 1 {
		t.Fatalf("unexpected issue: %+v", issues[0])
	}
}

func TestFetch_NonSuccessStatusIsLoadError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(ts.Client())
	_, err := c.Fetch(context.Background(), ts.URL+"/manifest.json")
	if err == nil {
		t.Fatal("expected error for status 404")
	}
	if !IsLoadError(err) {
		t.Fatalf("expected a LoadError, got %T", err)
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_MalformedBodyIsLoadError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer ts.Close()

	c := NewClient(ts.Client())
	_, err := c.Fetch(context.Background(), ts.URL+"/manifest.json")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if !IsLoadError(err) {
		t.Fatalf("expected a LoadError, got %T", err)
	}
}

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	payload := `[{"id":"x1","title":"Paper X","date":"1915-03-01","issue_thumb":"thumb.jpg"}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c := NewClient(nil)
	issues, err := c.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(issues) != 1 || issues[0].ID != "x1" {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestFetch_MissingFileIsLoadError(t *testing.T) {
	c := NewClient(nil)
	_, err := c.Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !IsLoadError(err) {
		t.Fatalf("expected a LoadError, got %T", err)
	}
}
