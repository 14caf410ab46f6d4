// Package app wires configuration, logging, storage and outbound fetching into
// a toolbox shared by the binaries
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/richard-senior/hoops/internal/config"
	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/prompts"
	"github.com/richard-senior/hoops/pkg/store"
	"github.com/richard-senior/hoops/pkg/tools"
	"github.com/richard-senior/hoops/pkg/transport"
)

// App holds the long lived dependencies of a binary
type App struct {
	Config  *config.Config
	Store   *store.Store
	Fetcher *transport.Fetcher
	Tools   *tools.Toolbox
	Prompts *prompts.PromptRegistry
}

// New loads the config at configPath (may be empty) and builds every dependency.
// Callers must Close the result.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := SetupLogging(cfg); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	f, err := transport.NewFetcher(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	pr := prompts.NewPromptRegistry()
	if cfg.PromptsDir != "" {
		n, err := pr.LoadDir(cfg.PromptsDir)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load prompts: %w", err)
		}
		logger.Info("Loaded prompt overrides:", n)
	}

	return &App{
		Config:  cfg,
		Store:   st,
		Fetcher: f,
		Tools:   tools.NewToolbox(cfg, st, f),
		Prompts: pr,
	}, nil
}

// SetupLogging applies the logging section of cfg to the package logger
func SetupLogging(cfg *config.Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetShowDateTime(true)
	return logger.SetLogOutput(cfg.LogOutput, cfg.LogPath)
}

// Close releases the store and the log file
func (a *App) Close() error {
	return errors.Join(a.Store.Close(), logger.Close())
}
