package coverart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"radio-playlist/scraper"
)

const DefaultAPIURL = "https://ws.audioscrobbler.com/2.0/"

// Last.fm error code for unknown tracks and artists.
const errCodeNotFound = 6

type Image struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

type Tag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Tags accepts both shapes Last.fm uses for tag lists: an array, or a single
// object when there is only one tag.
type Tags []Tag

func (t *Tags) UnmarshalJSON(data []byte) error {
	var many []Tag
	if err := json.Unmarshal(data, &many); err == nil {
		*t = many
		return nil
	}
	var one Tag
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*t = Tags{one}
	return nil
}

type Album struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	URL    string  `json:"url"`
	Image  []Image `json:"image"`
}

type Wiki struct {
	Published string `json:"published"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
}

type TrackInfo struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Duration  string `json:"duration"`
	Listeners string `json:"listeners"`
	Playcount string `json:"playcount"`
	Artist    struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"artist"`
	Album   *Album  `json:"album,omitempty"`
	Image   []Image `json:"image,omitempty"`
	TopTags struct {
		Tag Tags `json:"tag"`
	} `json:"toptags"`
	Wiki *Wiki `json:"wiki,omitempty"`
}

// CoverArt returns the best album image, falling back to the track's own
// images.
func (t *TrackInfo) CoverArt() string {
	if t.Album != nil {
		if img := PickImage(t.Album.Image); img != "" {
			return img
		}
	}
	return PickImage(t.Image)
}

type ArtistInfo struct {
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Image []Image `json:"image"`
}

// PickImage prefers an "extralarge" image and falls back to "large". Other
// sizes are too small for cover art.
func PickImage(images []Image) string {
	for _, size := range []string{"extralarge", "large"} {
		for _, img := range images {
			if img.Size == size && img.URL != "" {
				return img.URL
			}
		}
	}
	return ""
}

// APIError is an error payload returned by Last.fm with a 200 or 4xx status.
type APIError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("last.fm error %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err means Last.fm does not know the track or
// artist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == errCodeNotFound
}

// Client is a read-only Last.fm API client for the two metadata calls the
// enricher needs.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, client: client}
}

func (c *Client) TrackInfo(ctx context.Context, artist, title string) (*TrackInfo, error) {
	params := url.Values{}
	params.Set("method", "track.getInfo")
	params.Set("artist", artist)
	params.Set("track", title)
	params.Set("autocorrect", "1")

	var resp struct {
		Track *TrackInfo `json:"track"`
	}
	if err := c.call(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Track == nil {
		return nil, &APIError{Code: errCodeNotFound, Message: "Track not found"}
	}
	return resp.Track, nil
}

func (c *Client) ArtistInfo(ctx context.Context, artist string) (*ArtistInfo, error) {
	params := url.Values{}
	params.Set("method", "artist.getInfo")
	params.Set("artist", artist)
	params.Set("autocorrect", "1")

	var resp struct {
		Artist *ArtistInfo `json:"artist"`
	}
	if err := c.call(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Artist == nil {
		return nil, &APIError{Code: errCodeNotFound, Message: "Artist not found"}
	}
	return resp.Artist, nil
}

func (c *Client) call(ctx context.Context, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &scraper.FetchError{URL: c.baseURL, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &scraper.FetchError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &scraper.FetchError{URL: c.baseURL, Err: err}
	}

	var apiErr APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != 0 {
		return &apiErr
	}
	if resp.StatusCode != http.StatusOK {
		return &scraper.FetchError{URL: c.baseURL, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", params.Get("method"), err)
	}
	return nil
}
