// Package config loads the service configuration from an optional TOML
// file. Every field has a workable default so the server starts with no
// config at all.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Upload configures the remote image host (multipart POST).
type Upload struct {
	URL       string `toml:"url"`
	Preset    string `toml:"preset"`
	CloudName string `toml:"cloud_name"`
}

// Relay configures the spreadsheet-backed form relay.
type Relay struct {
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
}

type Config struct {
	Listen            string `toml:"listen"`
	DataDir           string `toml:"data_dir"`
	PosterTemplate    string `toml:"poster_template"`
	Font              string `toml:"font"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`

	Upload Upload `toml:"upload"`
	Relay  Relay  `toml:"relay"`
}

// Default returns the zero-config setup: local data directory, bundled
// fonts, submission side-channel disabled.
func Default() Config {
	return Config{
		Listen:            ":8080",
		DataDir:           "data",
		PosterTemplate:    "assets/poster.png",
		SessionTTLMinutes: 30,
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SessionTTL returns the idle session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
