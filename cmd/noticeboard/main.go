package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"noticeboard/internal/config"
	"noticeboard/internal/pkg/logger"
	"noticeboard/internal/storage/remote"
	"noticeboard/internal/ui/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}

	logFile := logger.Configure(cfg, paths)
	defer logFile.Close()

	log.Info().
		Str("base_url", cfg.BaseURL).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("starting noticeboard")

	m := app.NewModel(remote.NewStore(cfg))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
