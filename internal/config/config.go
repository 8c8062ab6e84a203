package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultManifest = "web_content/manifest.json"
	defaultDBPath   = "broadsheet.db"
	defaultYearFrom = 1910
	defaultYearTo   = 1929
	defaultPageSize = 12
)

// Config holds runtime settings for the archive browser.
type Config struct {
	Manifest  string
	AssetRoot string
	DBPath    string
	YearFrom  int
	YearTo    int
	PageSize  int
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Manifest:  os.Getenv("BROADSHEET_MANIFEST"),
		AssetRoot: os.Getenv("BROADSHEET_ASSET_ROOT"),
		DBPath:    os.Getenv("BROADSHEET_DB_PATH"),
	}

	if cfg.Manifest == "" {
		cfg.Manifest = defaultManifest
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.AssetRoot == "" {
		cfg.AssetRoot = deriveAssetRoot(cfg.Manifest)
	}

	var err error
	if cfg.YearFrom, err = intEnv("BROADSHEET_YEAR_FROM", defaultYearFrom); err != nil {
		return Config{}, err
	}
	if cfg.YearTo, err = intEnv("BROADSHEET_YEAR_TO", defaultYearTo); err != nil {
		return Config{}, err
	}
	if cfg.PageSize, err = intEnv("BROADSHEET_PAGE_SIZE", defaultPageSize); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Manifest == "" {
		return errors.New("Manifest is required")
	}
	if c.AssetRoot == "" {
		return errors.New("AssetRoot is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.YearFrom > c.YearTo {
		return fmt.Errorf("year range is inverted: %d > %d", c.YearFrom, c.YearTo)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PageSize must be positive: %d", c.PageSize)
	}
	return nil
}

// deriveAssetRoot defaults the asset root to the manifest's directory, which
// covers the common layout of a manifest sitting next to its scans.
func deriveAssetRoot(manifest string) string {
	if idx := strings.LastIndex(manifest, "/"); idx > 0 {
		return manifest[:idx]
	}
	return "."
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, raw)
	}
	return value, nil
}
