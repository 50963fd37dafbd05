package repositories

import (
	"errors"
	"fmt"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/registry"
	"github.com/desertthunder/tuber/internal/shared"
)

// ConfigRepository stores provider configuration under "config/<provider>".
//
// Identity is the provider name. Unlike the content-addressed repositories,
// Set replaces the stored record instead of merging into it.
type ConfigRepository struct {
	*EntityRepository[models.Config, *models.Config]
}

// NewConfigRepository creates a new ConfigRepository over the given registry
func NewConfigRepository(r *registry.Registry) *ConfigRepository {
	identify := func(c *models.Config) string { return string(c.Provider) }
	return &ConfigRepository{newEntityRepository(r, identify, configRoot)}
}

// Set overwrites the configuration of cfg.Provider.
func (r *ConfigRepository) Set(cfg *models.Config) (*models.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	record := &models.Config{Provider: cfg.Provider, Data: cfg.Data}
	record.ID = r.identify(record)

	existing, err := r.Get(record.ID)
	switch {
	case err == nil:
		record.Sequence = existing.Sequence
	case errors.Is(err, shared.ErrNotFound):
		if record.Sequence, err = r.nextSequence(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return r.write(record)
}

// GetProvider returns the configuration for provider, or [shared.ErrNotFound].
func (r *ConfigRepository) GetProvider(provider models.Provider) (*models.Config, error) {
	cfg, err := r.Get(string(provider))
	if err != nil {
		return nil, fmt.Errorf("config for %s: %w", provider, err)
	}
	return cfg, nil
}

// GetOrDefault returns the configuration for provider, or def when none is stored.
//
// Only absence is relaxed; a corrupt record is still an error.
func (r *ConfigRepository) GetOrDefault(provider models.Provider, def *models.Config) (*models.Config, error) {
	cfg, err := r.GetProvider(provider)
	if errors.Is(err, shared.ErrNotFound) {
		return def, nil
	}
	return cfg, err
}
