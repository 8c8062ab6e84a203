package main

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"broadsheet/internal/app"
	"broadsheet/internal/archive"
	"broadsheet/internal/config"
	"broadsheet/internal/manifest"
	"broadsheet/internal/storage"
	"broadsheet/internal/tui"
	"broadsheet/internal/viewer"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		log.Fatalf("storage write check failed (%v). Verify BROADSHEET_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	client := manifest.NewClient(nil)
	service := app.NewService(client, repo, cfg.Manifest, cfg.YearFrom, cfg.YearTo)

	cacheLoadStart := time.Now()
	cached, err := service.ListCached(ctx)
	if err != nil {
		cached = nil
	}
	cacheLoadDuration := time.Since(cacheLoadStart)

	introDismissed, err := service.IntroDismissed(ctx)
	if err != nil {
		introDismissed = false
	}

	sortOrder := archive.SortDateAsc
	if saved, ok, err := service.SavedSortOrder(ctx); err == nil && ok {
		sortOrder = archive.SortOrder(saved)
	}
	thumbsVisible, err := service.ThumbnailsVisible(ctx)
	if err != nil {
		thumbsVisible = false
	}

	var prober viewer.Prober = viewer.NewHTTPProber(nil)
	if !strings.HasPrefix(cfg.AssetRoot, "http://") && !strings.HasPrefix(cfg.AssetRoot, "https://") {
		prober = viewer.FileProber{}
	}

	model := tui.NewModel(service, tui.Options{
		Cached:            cached,
		IntroDismissed:    introDismissed,
		AssetRoot:         cfg.AssetRoot,
		PageSize:          cfg.PageSize,
		Prober:            prober,
		SortOrder:         sortOrder,
		ThumbnailsVisible: thumbsVisible,
	})
	model.SetStartupCacheStats(cacheLoadDuration, len(cached))

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
