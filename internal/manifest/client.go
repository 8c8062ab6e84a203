package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// LoadError marks manifest load failures: unreachable location, non-success
// status, or a body that is not a JSON issue array. The load cycle is
// terminal but retryable by explicit user action.
type LoadError struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load manifest %s: %v", e.Location, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is a manifest load failure.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{http: httpClient}
}

// Fetch retrieves the issue array from location, which is either an http(s)
// URL or a local file path.
func (c *Client) Fetch(ctx context.Context, location string) ([]Issue, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return c.fetchHTTP(ctx, location)
	}
	return fetchFile(location)
}

func (c *Client) fetchHTTP(ctx context.Context, url string) ([]Issue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Location: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LoadError{Location: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &LoadError{
			Location: url,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	issues, err := decodeIssues(resp.Body)
	if err != nil {
		return nil, &LoadError{Location: url, Err: err}
	}
	return issues, nil
}

func fetchFile(path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Location: path, Err: err}
	}
	defer f.Close()

	issues, err := decodeIssues(f)
	if err != nil {
		return nil, &LoadError{Location: path, Err: err}
	}
	return issues, nil
}

func decodeIssues(r io.Reader) ([]Issue, error) {
	var issues []Issue
	if err := json.NewDecoder(r).Decode(&issues); err != nil {
		return nil, fmt.Errorf("decode issue array: %w", err)
	}
	return issues, nil
}
