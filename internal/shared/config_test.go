package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Server.SessionTTL != 24*time.Hour {
			t.Errorf("expected session ttl 24h, got %v", config.Server.SessionTTL)
		}

		if config.Storage.Driver != StorageFile || config.Storage.UsersFile != "users.json" {
			t.Errorf("unexpected storage defaults: %+v", config.Storage)
		}

		if config.Credentials.Spotify.Timeout != 10*time.Second {
			t.Errorf("expected spotify timeout 10s, got %v", config.Credentials.Spotify.Timeout)
		}

		if config.Server.ProtectDataEndpoints {
			t.Error("expected data endpoints to be open by default")
		}

		if config.Credentials.Spotify.ClientID != "" || config.Credentials.Spotify.ClientSecret != "" {
			t.Errorf("expected empty default credentials, got %+v", config.Credentials.Spotify)
		}

		if config.Playlists["sad"] != "7ymUBqQy9JAvuajmF7U2xh" {
			t.Errorf("expected default sad playlist, got %q", config.Playlists["sad"])
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[server]
host = "0.0.0.0"
port = 8080
session_ttl = "30m"

[storage]
driver = "sqlite"

[database]
path = "/custom/path.db"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[playlists]
happy = "custom_happy"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Server.SessionTTL != 30*time.Minute {
			t.Errorf("expected session ttl 30m, got %v", config.Server.SessionTTL)
		}
		if config.Storage.Driver != StorageSQLite {
			t.Errorf("expected sqlite driver, got %s", config.Storage.Driver)
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Playlists["happy"] != "custom_happy" {
			t.Errorf("expected happy override, got %s", config.Playlists["happy"])
		}
		if config.Playlists["neutral"] != "7EClwmhqu7mg4JvUI9z5DT" {
			t.Errorf("expected neutral default kept, got %s", config.Playlists["neutral"])
		}
		if config.Camera.JPEGQuality != 80 {
			t.Errorf("expected camera defaults kept, got quality %d", config.Camera.JPEGQuality)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }},
			{"empty users file", func(c *Config) { c.Storage.UsersFile = "" }},
			{"bad port", func(c *Config) { c.Server.Port = 0 }},
			{"zero ttl", func(c *Config) { c.Server.SessionTTL = 0 }},
			{"bad quality", func(c *Config) { c.Camera.JPEGQuality = 101 }},
			{"unknown emotion", func(c *Config) { c.Playlists["bored"] = "x" }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvSpotifyClientID, "env_id")
		t.Setenv(EnvSpotifyClientSecret, "")
		t.Setenv(EnvPort, "9090")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientSecret = "from_config"
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "from_config" {
			t.Errorf("expected config fallback for secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
		if config.Server.Port != 9090 {
			t.Errorf("expected port 9090, got %d", config.Server.Port)
		}

		t.Setenv(EnvPort, "nope")
		if err := ApplyEnv(config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for bad port, got %v", err)
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("MOODMIX_TEST_VALUE=from_file\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("MOODMIX_TEST_VALUE") })

		if err := LoadEnv(envPath, filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("LoadEnv failed: %v", err)
		}
		if got := os.Getenv("MOODMIX_TEST_VALUE"); got != "from_file" {
			t.Errorf("expected from_file, got %q", got)
		}
	})
}
