package cmd

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"radio-playlist/poller"
	"radio-playlist/scraper"
	"radio-playlist/ui"
)

var watchServer string

func init() {
	watchCmd.Flags().StringVar(&watchServer, "server", "", "Follow a running server (e.g. http://localhost:8080) instead of scraping directly")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the playlist in the terminal and keep it up to date",
	Run: func(cmd *cobra.Command, args []string) {
		executeWatch(cmd.Context())
	},
}

func executeWatch(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := newHTTPClient()

	var source scraper.Scraper
	if watchServer != "" {
		base := scraper.NewBaseScraper(scraper.PlaylistEndpoint(watchServer), cfg.UserAgent, client)
		source = scraper.NewJSONScraper(base)
	} else {
		service, cleanup, err := newService(client, newLastFM(client), nil, 0)
		if err != nil {
			logger.Fatalf("Error initializing cover art cache: %v", err)
		}
		defer cleanup()
		source = service
	}

	p := poller.New(source, cfg.RefreshInterval)
	model, unsubscribe := ui.New(ctx, p)
	defer unsubscribe()

	// The terminal belongs to the view while it runs.
	output := logger.Out
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(output)

	go func() {
		if err := p.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf("Poller stopped: %v", err)
		}
	}()

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		logger.SetOutput(output)
		logger.Fatalf("Error running terminal view: %v", err)
	}
}
