package render

import (
	"net/url"

	"radio-playlist/spotify"
)

// Links are the external search pages offered for a song.
type Links struct {
	YouTube string `json:"youtube"`
	Spotify string `json:"spotify"`
}

func YouTubeSearchURL(artist, title string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(artist+" - "+title)
}

// SearchLinks builds the default links for a song without contacting any
// external service.
func SearchLinks(artist, title string) Links {
	return Links{
		YouTube: YouTubeSearchURL(artist, title),
		Spotify: spotify.SearchURL(artist, title),
	}
}
