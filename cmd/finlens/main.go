package main

import (
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"finlens/internal/brain"
	"finlens/internal/config"
	"finlens/internal/fetch"
	"finlens/internal/logging"
	"finlens/internal/news"
	"finlens/internal/session"
	"finlens/internal/store"
	"finlens/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logging.Init(dataDir); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	history, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer history.Close()

	clock := news.NewNormalizer(cfg.TimeZone)
	fetcher := fetch.NewFetcher(10*time.Second, clock)

	manager := brain.NewManager()
	manager.Add(brain.NewGLMProvider(cfg.Completion.APIKey, cfg.Completion.Model, cfg.Completion.Endpoint))
	manager.Add(brain.NewOpenAIProvider(cfg.Completion.OpenAIKey, ""))
	manager.SetPreferred(cfg.Completion.Preferred)
	analyst := brain.NewAnalyst(manager)
	if !analyst.Available() {
		logging.Warn("no completion provider configured; analysis disabled")
	}

	sess := session.New(cfg.MaxTotal, cfg.PageSize, time.Duration(cfg.RefreshIntervalSeconds)*time.Second)

	// Seed the cache from the persisted history so the dashboard is usable
	// before the first fetch lands.
	if rows, err := history.Recent(cfg.MaxTotal); err != nil {
		logging.Warn("history load failed", "error", err)
	} else {
		sess.Seed(store.ToItems(rows))
	}

	app := ui.NewApp(sess, cfg, fetcher, analyst, history, clock)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		log.Printf("Error running program: %v", err)
	}
}
