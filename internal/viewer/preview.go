package viewer

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

const previewRows = 36

// RenderPage downloads a page image and renders it for the terminal via
// chafa. zoom scales the render width multiplicatively; the TUI clamps it to
// the session bounds before calling.
func RenderPage(ref string, width int, zoom float64) (string, error) {
	if width < 30 {
		width = 60
	}
	if zoom >= 1 {
		width = int(float64(width) * zoom)
	}

	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	imageData, err := fetchImage(ref)
	if err != nil {
		return "", err
	}

	rows := previewRows
	if zoom >= 1 {
		rows = int(float64(rows) * zoom)
	}
	args := []string{
		"--size", fmt.Sprintf("%dx%d", width, rows),
		"--align", "top,center",
		"--format", "symbols",
		"-",
	}
	cmd := exec.Command(chafaPath, args...)
	cmd.Stdin = bytes.NewReader(imageData)
	output, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		return "", fmt.Errorf("render page via chafa: %w: %s", err, trimmed)
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty render output")
	}
	return trimmed, nil
}

func fetchImage(ref string) ([]byte, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("read page image: %w", err)
		}
		return data, nil
	}

	client := &http.Client{Timeout: 8 * time.Second}
	resp, err := client.Get(ref)
	if err != nil {
		return nil, fmt.Errorf("download page image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download page image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read page image: %w", err)
	}
	return data, nil
}
