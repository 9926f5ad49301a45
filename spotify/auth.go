package spotify

import (
	"context"
	"net/http"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"radio-playlist/utils"
)

// newHTTPClient returns an HTTP client that authenticates with the client
// credentials flow and refreshes its token on demand. Search only needs
// app-level access, so no user login is involved.
func newHTTPClient(ctx context.Context, clientID, clientSecret string) *http.Client {
	utils.Logger.Debugf("Initializing Spotify client credentials for client ID: %s", clientID)

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return config.Client(ctx)
}
