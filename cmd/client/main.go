package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nurkanat-dev/lifelog/internal/client/api"
	"github.com/nurkanat-dev/lifelog/internal/client/session"
	"github.com/nurkanat-dev/lifelog/internal/client/tui"
)

type config struct {
	ServerURL   string `env:"LIFELOG_SERVER_URL" envDefault:"http://localhost:8080"`
	SessionFile string `env:"LIFELOG_SESSION_FILE"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lifelog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	client := api.NewHTTPClient(cfg.ServerURL)

	store, err := session.New(client, cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	program := tea.NewProgram(tui.New(store, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
