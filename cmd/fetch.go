package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var fetchJSON bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Print the snapshot as JSON instead of logging it")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the current playlist once",
	Run: func(cmd *cobra.Command, args []string) {
		executeFetch(cmd.Context())
	},
}

func executeFetch(ctx context.Context) {
	client := newHTTPClient()
	service, cleanup, err := newService(client, newLastFM(client), nil, 0)
	if err != nil {
		logger.Fatalf("Error initializing cover art cache: %v", err)
	}
	defer cleanup()

	snapshot, err := service.Scrape(ctx)
	if err != nil {
		logger.Fatalf("Error fetching playlist: %v", err)
	}

	if fetchJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshot); err != nil {
			logger.Fatalf("Error encoding playlist: %v", err)
		}
		return
	}

	logger.Infof("Station: %s, %d songs", snapshot.Station, len(snapshot.Songs))
	for _, song := range snapshot.Songs {
		if song.IsLive {
			logger.Infof("[LIVE] %s - %s %s", song.Artist, song.Title, song.CoverArt)
			continue
		}
		logger.Infof("%s %s - %s %s", song.Timestamp, song.Artist, song.Title, song.CoverArt)
	}
}
