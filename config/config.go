package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultStation     = "KINK"
	DefaultPlaylistURL = "https://onlineradiobox.com/nl/kink/playlist/?cs=nl.slamfm"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Config struct {
	Station     string        `mapstructure:"station"`
	PlaylistURL string        `mapstructure:"playlist_url"`
	UserAgent   string        `mapstructure:"user_agent"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	LastFMAPIKey string `mapstructure:"lastfm_api_key"`
	LastFMURL    string `mapstructure:"lastfm_url"`
	EnrichLimit  int    `mapstructure:"enrich_limit"`

	Cache     string        `mapstructure:"cache"`
	CacheDSN  string        `mapstructure:"cache_dsn"`
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`

	SnapshotFile   string        `mapstructure:"snapshot_file"`
	SnapshotMaxAge time.Duration `mapstructure:"snapshot_max_age"`

	Listen          string        `mapstructure:"listen"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	SpotifyID     string `mapstructure:"spotify_id"`
	SpotifySecret string `mapstructure:"spotify_secret"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("station", DefaultStation)
	v.SetDefault("playlist_url", DefaultPlaylistURL)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("http_timeout", time.Duration(0))
	v.SetDefault("lastfm_api_key", "")
	v.SetDefault("lastfm_url", "https://ws.audioscrobbler.com/2.0/")
	v.SetDefault("enrich_limit", 10)
	v.SetDefault("cache", "memory")
	v.SetDefault("cache_dsn", "")
	v.SetDefault("cache_size", 1024)
	v.SetDefault("cache_ttl", 24*time.Hour)
	v.SetDefault("snapshot_file", "data/playlist.json")
	v.SetDefault("snapshot_max_age", time.Duration(0))
	v.SetDefault("listen", ":8080")
	v.SetDefault("refresh_interval", time.Minute)
	v.SetDefault("spotify_id", "")
	v.SetDefault("spotify_secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Station == "" {
		return errors.New("station must not be empty")
	}
	u, err := url.Parse(c.PlaylistURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid playlist url %q", c.PlaylistURL)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", c.RefreshInterval)
	}
	if c.HTTPTimeout < 0 || c.CacheTTL < 0 || c.SnapshotMaxAge < 0 {
		return errors.New("durations must not be negative")
	}
	if c.EnrichLimit < 0 {
		return fmt.Errorf("enrich limit must not be negative, got %d", c.EnrichLimit)
	}
	switch c.Cache {
	case "memory", "redis", "sqlite", "postgres", "none":
	default:
		return fmt.Errorf("unknown cache type %q", c.Cache)
	}
	if c.Cache == "postgres" && c.CacheDSN == "" {
		return errors.New("cache_dsn is required for the postgres cache")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
