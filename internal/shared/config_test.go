package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Driver != DriverJSON {
			t.Errorf("expected storage driver json, got %s", config.Storage.Driver)
		}

		if config.Storage.Path != "" {
			t.Errorf("expected empty storage path, got %s", config.Storage.Path)
		}

		if config.Lastfm.RequestsPerSecond != 4.0 {
			t.Errorf("expected 4 requests per second, got %v", config.Lastfm.RequestsPerSecond)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Driver != DefaultConfig().Storage.Driver {
			t.Errorf("created config storage driver doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[storage]
driver = "sqlite"
path = "/custom/tuber.db"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Driver != DriverSQLite {
			t.Errorf("expected driver sqlite, got %s", config.Storage.Driver)
		}

		path, err := config.StoragePath()
		if err != nil || path != "/custom/tuber.db" {
			t.Errorf("expected storage path /custom/tuber.db, got %s (%v)", path, err)
		}

		if config.Lastfm.Burst != 1 {
			t.Errorf("expected missing keys to keep defaults, got burst %d", config.Lastfm.Burst)
		}
	})

	t.Run("LoadConfig rejects unknown driver", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[storage]\ndriver = \"bolt\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig rejects malformed toml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[storage\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
