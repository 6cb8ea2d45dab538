package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homereno/renoterm/internal/api"
	"github.com/homereno/renoterm/internal/app"
	"github.com/homereno/renoterm/internal/geocode"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renoterm: %v\n", err)
		os.Exit(1)
	}

	dbPath := filepath.Join(filepath.Dir(*configPath), "cache.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "renoterm: %v\n", err)
		os.Exit(1)
	}
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renoterm: opening cache: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	client := api.NewClient(cfg.APIBaseURL, cfg.APIKey, nil)
	geocoder := geocode.NewClient(cfg.GeocoderURL)

	p := tea.NewProgram(
		app.New(cfg, client, geocoder, s),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "renoterm: %v\n", err)
		os.Exit(1)
	}
}
