package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"radio-playlist/render"
	"radio-playlist/scraper"
	"radio-playlist/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the playlist page and JSON API",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("snapshot-max-age", 0, "Reuse the snapshot file while it is younger than this (0 disables it)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("snapshot_max_age", serveCmd.Flags().Lookup("snapshot-max-age"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newHTTPClient()
	lastfm := newLastFM(client)

	var store scraper.SnapshotStore
	if cfg.SnapshotMaxAge > 0 {
		var err error
		store, err = newSnapshotStore()
		if err != nil {
			logger.Fatalf("Error initializing snapshot file: %v", err)
		}
	}

	service, cleanup, err := newService(client, lastfm, store, cfg.SnapshotMaxAge)
	if err != nil {
		logger.Fatalf("Error initializing cover art cache: %v", err)
	}
	defer cleanup()

	renderer, err := render.NewTableRenderer(cfg.Station, cfg.RefreshInterval)
	if err != nil {
		logger.Fatalf("Error loading templates: %v", err)
	}

	// Keep a nil interface when Last.fm is disabled so the track endpoint
	// reports it as unavailable.
	var tracks server.TrackInfoSource
	if lastfm != nil {
		tracks = lastfm
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(service, tracks, newLinker(ctx), renderer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Serving %s playlist on %s", cfg.Station, cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Error running HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Received interrupt signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error shutting down HTTP server: %v", err)
	}
	logger.Info("Stopped server")
}
