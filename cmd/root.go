package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"radio-playlist/config"
	"radio-playlist/utils"
)

var (
	logger = utils.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "radio-playlist",
	Short: "Radio playlist shows what the radio station is playing now and what it played before.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		utils.SetLevel(cfg.LogLevel)
		utils.SetFormat(cfg.LogFormat)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("station", config.DefaultStation, "Station name shown with the playlist")
	flags.String("playlist-url", config.DefaultPlaylistURL, "Playlist page to scrape")
	flags.Duration("http-timeout", 0, "Timeout for outbound requests (0 disables it)")
	flags.String("lastfm-api-key", "", "Last.fm API key, cover art is disabled without one")
	flags.Int("enrich-limit", 10, "Number of recent songs to look up cover art for")
	flags.String("cache", "memory", "Cover art cache: memory, redis, sqlite, postgres or none")
	flags.String("cache-dsn", "", "Cache connection string or database path")
	flags.Duration("interval", time.Minute, "Playlist refresh interval")
	flags.String("snapshot-file", "data/playlist.json", "Path of the playlist snapshot file")
	flags.String("spotify-id", "", "Spotify client ID used to resolve track links")
	flags.String("spotify-secret", "", "Spotify client secret used to resolve track links")
	flags.String("loglevel", "info", "Logging level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")

	// Bind flags to Viper
	viper.BindPFlag("station", flags.Lookup("station"))
	viper.BindPFlag("playlist_url", flags.Lookup("playlist-url"))
	viper.BindPFlag("http_timeout", flags.Lookup("http-timeout"))
	viper.BindPFlag("lastfm_api_key", flags.Lookup("lastfm-api-key"))
	viper.BindPFlag("enrich_limit", flags.Lookup("enrich-limit"))
	viper.BindPFlag("cache", flags.Lookup("cache"))
	viper.BindPFlag("cache_dsn", flags.Lookup("cache-dsn"))
	viper.BindPFlag("refresh_interval", flags.Lookup("interval"))
	viper.BindPFlag("snapshot_file", flags.Lookup("snapshot-file"))
	viper.BindPFlag("spotify_id", flags.Lookup("spotify-id"))
	viper.BindPFlag("spotify_secret", flags.Lookup("spotify-secret"))
	viper.BindPFlag("log_level", flags.Lookup("loglevel"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))

	config.SetDefaults(viper.GetViper())

	// Environment variables use the RP_ prefix, e.g. RP_LASTFM_API_KEY
	viper.SetEnvPrefix("RP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	// A .env file is optional
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		logger.Debugf("No config file found, using environment variables and defaults: %v", err)
	}
}
