package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"radio-playlist/coverart"
	"radio-playlist/render"
)

func init() {
	rootCmd.AddCommand(trackCmd)
}

var trackCmd = &cobra.Command{
	Use:   "track ARTIST TITLE",
	Short: "Show Last.fm details and listening links for a track",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		executeTrack(cmd.Context(), args[0], args[1])
	},
}

func executeTrack(ctx context.Context, artist, title string) {
	links := render.SearchLinks(artist, title)
	spotifyURL, err := newLinker(ctx).TrackURL(ctx, artist, title)
	if err != nil {
		logger.Warnf("Error resolving Spotify link: %v", err)
	}
	links.Spotify = spotifyURL

	lastfm := newLastFM(newHTTPClient())
	if lastfm == nil {
		logger.Warn("No Last.fm API key configured, showing links only")
		printLinks(links)
		return
	}

	info, err := lastfm.TrackInfo(ctx, artist, title)
	if coverart.IsNotFound(err) {
		logger.Fatalf("Track not found: %s - %s", artist, title)
	}
	if err != nil {
		logger.Fatalf("Error fetching track info: %v", err)
	}

	fmt.Printf("%s - %s\n", info.Artist.Name, info.Name)
	if info.Album != nil && info.Album.Title != "" {
		fmt.Printf("Album:     %s\n", info.Album.Title)
	}
	if info.Duration != "" && info.Duration != "0" {
		fmt.Printf("Duration:  %s ms\n", info.Duration)
	}
	fmt.Printf("Listeners: %s\n", info.Listeners)
	fmt.Printf("Playcount: %s\n", info.Playcount)
	if len(info.TopTags.Tag) > 0 {
		names := make([]string, 0, len(info.TopTags.Tag))
		for _, tag := range info.TopTags.Tag {
			names = append(names, tag.Name)
		}
		fmt.Printf("Tags:      %s\n", strings.Join(names, ", "))
	}
	if image := info.CoverArt(); image != "" {
		fmt.Printf("Cover:     %s\n", image)
	}
	if info.Wiki != nil && info.Wiki.Summary != "" {
		fmt.Printf("\n%s\n", info.Wiki.Summary)
	}
	fmt.Println()
	printLinks(links)
}

func printLinks(links render.Links) {
	fmt.Printf("YouTube:   %s\n", links.YouTube)
	fmt.Printf("Spotify:   %s\n", links.Spotify)
}
