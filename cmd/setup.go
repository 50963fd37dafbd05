package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing and initializes storage.
//
// For the SQLite driver opening the store runs the migrations. An existing
// registry document is loaded and written back unchanged, unless --reset
// discards it; for SQLite that rolls back and reapplies the migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err == nil {
		r.logger.Info("config file exists", "path", r.configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		if err := r.loadConfig(r.configPath); err != nil {
			return err
		}
	}

	if err := r.open(); err != nil {
		return err
	}
	if cmd.Bool("reset") {
		if err := r.confirm("This deletes every playlist, track and provider configuration. Do you want to continue?", cmd.Bool("yes")); err != nil {
			return err
		}
		if err := r.store.Reset(); err != nil {
			return fmt.Errorf("failed to reset storage: %w", err)
		}
		r.registry.Clear()
		r.logger.Info("storage reset", "store", r.store)
		r.writePlain("Storage reset: %s\n", r.store)
	}
	if err := r.persist(); err != nil {
		return err
	}

	r.logger.Info("setup complete", "store", r.store)
	r.writePlain("Configuration: %s\n", r.configPath)
	r.writePlain("Storage initialized: %s\n", r.store)
	return nil
}

// LastfmSetup stores the Last.fm API key in the registry.
//
// An existing configuration is only replaced after confirmation or with --force.
func (r *Runner) LastfmSetup(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	apiKey := cmd.String("api-key")
	if apiKey == "" {
		var err error
		if apiKey, err = r.prompt("Last.fm Api Key: "); err != nil {
			return err
		}
	}
	if apiKey == "" {
		return fmt.Errorf("%w: api key", shared.ErrMissingArgument)
	}

	_, err := r.configs.GetProvider(models.ProviderLastfm)
	switch {
	case err == nil:
		if err := r.confirm("Overwrite existing configuration?", cmd.Bool("force")); err != nil {
			return err
		}
	case !errors.Is(err, shared.ErrNotFound):
		return err
	}

	cfg := &models.Config{Provider: models.ProviderLastfm, Data: map[string]string{"api_key": apiKey}}
	if _, err := r.configs.Set(cfg); err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}

	r.logger.Info("lastfm configuration stored")
	r.writePlain("Last.fm configuration updated!\n")
	return nil
}
