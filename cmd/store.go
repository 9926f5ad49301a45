package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	storeDryRun bool
	storeMaxAge time.Duration
)

func init() {
	storeCmd.Flags().BoolVar(&storeDryRun, "dry-run", false, "Dry run mode")
	storeCmd.Flags().DurationVar(&storeMaxAge, "max-age", 5*time.Minute, "Skip scraping while the snapshot file is younger than this")
	rootCmd.AddCommand(storeCmd)
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Store the current playlist in the snapshot file",
	Run: func(cmd *cobra.Command, args []string) {
		executeStore(cmd.Context())
	},
}

func executeStore(ctx context.Context) {
	client := newHTTPClient()
	lastfm := newLastFM(client)

	if storeDryRun {
		service, cleanup, err := newService(client, lastfm, nil, 0)
		if err != nil {
			logger.Fatalf("Error initializing cover art cache: %v", err)
		}
		defer cleanup()

		snapshot, err := service.Scrape(ctx)
		if err != nil {
			logger.Fatalf("Error fetching playlist: %v", err)
		}
		fmt.Printf("Dry run: would store %d songs for station %s in %s\n", len(snapshot.Songs), snapshot.Station, cfg.SnapshotFile)
		return
	}

	store, err := newSnapshotStore()
	if err != nil {
		logger.Fatalf("Error initializing snapshot file: %v", err)
	}
	if store == nil {
		logger.Fatal("No snapshot file configured")
	}

	service, cleanup, err := newService(client, lastfm, store, storeMaxAge)
	if err != nil {
		logger.Fatalf("Error initializing cover art cache: %v", err)
	}
	defer cleanup()

	snapshot, err := service.Scrape(ctx)
	if err != nil {
		logger.Fatalf("Error fetching playlist: %v", err)
	}
	fmt.Printf("Stored %d songs for station %s in %s (last updated %s)\n", len(snapshot.Songs), snapshot.Station, cfg.SnapshotFile, snapshot.LastUpdated.Format(time.RFC3339))
}
