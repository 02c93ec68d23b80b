package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Storage drivers accepted in [StorageConfig.Driver].
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log         LogConfig         `toml:"log"`
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Database    DatabaseConfig    `toml:"database"`
	Camera      CameraConfig      `toml:"camera"`
	Credentials CredentialsConfig `toml:"credentials"`
	Playlists   map[string]string `toml:"playlists"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// ServerConfig contains HTTP server and session settings.
type ServerConfig struct {
	Host                 string        `toml:"host"`
	Port                 int           `toml:"port"`
	SessionTTL           time.Duration `toml:"session_ttl"`
	SecureCookies        bool          `toml:"secure_cookies"`
	ProtectDataEndpoints bool          `toml:"protect_data_endpoints"`
	LoginRateLimit       float64       `toml:"login_rate_limit"`
	LoginBurst           int           `toml:"login_burst"`
	ShutdownTimeout      time.Duration `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects the credential store backend.
type StorageConfig struct {
	Driver    string `toml:"driver"`
	UsersFile string `toml:"users_file"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CameraConfig contains capture device settings.
type CameraConfig struct {
	Enabled     bool `toml:"enabled"`
	Device      int  `toml:"device"`
	FPS         int  `toml:"fps"`
	JPEGQuality int  `toml:"jpeg_quality"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify client-credentials settings.
type SpotifyConfig struct {
	ClientID     string        `toml:"client_id"`
	ClientSecret string        `toml:"client_secret"`
	Timeout      time.Duration `toml:"timeout"`
}

// Map returns the credentials in the form expected by services.NewSpotifyService.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks the values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.UsersFile == "" {
			return fmt.Errorf("%w: storage.users_file is empty", ErrInvalidConfig)
		}
	case StorageSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}

	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("%w: server.session_ttl must be positive", ErrInvalidConfig)
	}

	if c.Camera.JPEGQuality < 1 || c.Camera.JPEGQuality > 100 {
		return fmt.Errorf("%w: camera.jpeg_quality must be within 1-100", ErrInvalidConfig)
	}

	for label := range c.Playlists {
		switch label {
		case "happy", "sad", "angry", "neutral":
		default:
			return fmt.Errorf("%w: no emotion named %q in [playlists]", ErrInvalidConfig, label)
		}
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
