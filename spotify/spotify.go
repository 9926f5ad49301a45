package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/zmb3/spotify/v2"

	"radio-playlist/utils"
)

// SearchURL is the Spotify web search page for a song.
func SearchURL(artist, title string) string {
	return "https://open.spotify.com/search/" + url.PathEscape(fmt.Sprintf("%s %s", artist, title))
}

// Linker resolves songs to Spotify track pages. Without credentials it only
// builds search URLs.
type Linker struct {
	client *spotify.Client
}

func NewLinker(ctx context.Context, clientID, clientSecret string, opts ...spotify.ClientOption) *Linker {
	if clientID == "" || clientSecret == "" {
		utils.Logger.Debug("Spotify credentials not set, using search links")
		return &Linker{}
	}
	return &Linker{client: spotify.New(newHTTPClient(ctx, clientID, clientSecret), opts...)}
}

// TrackURL returns the track page of the best search match, or the search
// URL when there is no match. The search URL is also returned alongside any
// API error so callers always have a usable link.
func (l *Linker) TrackURL(ctx context.Context, artist, title string) (string, error) {
	fallback := SearchURL(artist, title)
	if l == nil || l.client == nil {
		return fallback, nil
	}

	results, err := l.client.Search(ctx, fmt.Sprintf("%s %s", artist, title), spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return fallback, err
	}
	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		utils.Logger.Debugf("No Spotify match for %s - %s", artist, title)
		return fallback, nil
	}

	if link, ok := results.Tracks.Tracks[0].ExternalURLs["spotify"]; ok && link != "" {
		return link, nil
	}
	return "https://open.spotify.com/track/" + results.Tracks.Tracks[0].ID.String(), nil
}
