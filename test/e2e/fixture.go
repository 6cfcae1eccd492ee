package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finlens/internal/store"
)

// seedFixtureDB creates ~/.finlens/news.db under homeDir with deterministic
// rows for the UI test.
func seedFixtureDB(homeDir string) error {
	dataDir := filepath.Join(homeDir, ".finlens")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	st, err := store.Open(filepath.Join(dataDir, "news.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	now := time.Now()
	rows := []store.Row{
		{
			Title:       "Fixture chip subsidy announced",
			Body:        "A deterministic item for UI tests.",
			Link:        "https://example.com/fixture-1",
			PublishTime: "2024-06-01 10:00:00",
			CreatedAt:   now,
		},
		{
			Title:       "Fixture rates held steady",
			Body:        "Second deterministic item.",
			Link:        "https://example.com/fixture-2",
			PublishTime: "2024-06-01 09:00:00",
			CreatedAt:   now,
		},
	}
	if _, err := st.SaveRows(rows); err != nil {
		return err
	}
	return nil
}

// writeFixtureConfig points the app's sources at a local flash endpoint so
// the test never touches the network.
func writeFixtureConfig(homeDir, sourceURL string) error {
	dataDir := filepath.Join(homeDir, ".finlens")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	cfg := fmt.Sprintf(`{
  "refresh_interval_seconds": 3600,
  "sources": [{"type": "flash", "name": "fixture", "url": %q}]
}`, sourceURL)
	return os.WriteFile(filepath.Join(dataDir, "config.json"), []byte(cfg), 0600)
}
