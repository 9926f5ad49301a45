package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "radio_playlist"

var (
	Scrapes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scrapes_total",
		Help:      "Playlist page scrapes by result.",
	}, []string{"result"})

	ScrapeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scrape_duration_seconds",
		Help:      "Time spent fetching and parsing the playlist page.",
		Buckets:   prometheus.DefBuckets,
	})

	SongsParsed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "songs_parsed",
		Help:      "Number of songs in the most recent snapshot.",
	})

	RowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_skipped_total",
		Help:      "Table rows that could not be parsed into a song.",
	})

	CoverArtLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coverart_lookups_total",
		Help:      "Cover art lookups by source and result.",
	}, []string{"source", "result"})

	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coverart_cache_requests_total",
		Help:      "Cover art cache lookups by backend and result.",
	}, []string{"backend", "result"})
)

func init() {
	prometheus.MustRegister(Scrapes, ScrapeDuration, SongsParsed, RowsSkipped, CoverArtLookups, CacheRequests)
}
