package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type HealthStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	LastFetchTime string `json:"last_fetch_time,omitempty"`
	LastError     string `json:"last_error,omitempty"`
}

var (
	healthMu      sync.Mutex
	lastFetchTime time.Time
	lastFetchErr  error
	fetchInterval time.Duration
)

// ConfigureHealthCheck sets the interval within which a successful scrape is
// expected. Zero disables the staleness check.
func ConfigureHealthCheck(interval time.Duration) {
	healthMu.Lock()
	defer healthMu.Unlock()
	fetchInterval = interval
}

// RecordFetch stores the outcome of a scrape. Successful scrapes move the
// last fetch time forward, failed ones only record the error.
func RecordFetch(t time.Time, err error) {
	healthMu.Lock()
	defer healthMu.Unlock()
	lastFetchErr = err
	if err == nil {
		lastFetchTime = t
	}
}

// HealthCheckHandler handles the health check requests
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	Logger.Debug("Health check request received")

	healthMu.Lock()
	last, lastErr, interval := lastFetchTime, lastFetchErr, fetchInterval
	healthMu.Unlock()

	status := HealthStatus{
		Status:  "healthy",
		Message: "Service is running",
	}

	if !last.IsZero() {
		if ok, message := checkInterval("fetch", last, interval); !ok {
			Logger.Warnf("Fetch is delayed: %s", message)
			status.Status = "unhealthy"
			status.Message = message
		}
		status.LastFetchTime = last.Format(time.RFC3339)
	}
	if lastErr != nil {
		status.LastError = lastErr.Error()
	}

	Logger.Debugf("Health check response: %v", status)
	w.Header().Set("Content-Type", "application/json")
	if status.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

// checkInterval reports whether the last update happened within the expected
// interval plus a 30 second grace period.
func checkInterval(name string, lastUpdateTime time.Time, expectedInterval time.Duration) (bool, string) {
	if expectedInterval == 0 {
		return true, fmt.Sprintf("%s is not expected to run", name)
	}
	delay := time.Since(lastUpdateTime) - expectedInterval
	Logger.Debugf("Time since last %s: %s", name, time.Since(lastUpdateTime))
	if delay.Round(time.Second) > 30*time.Second {
		return false, fmt.Sprintf("%s is delayed by %s", name, delay.Round(time.Second))
	}
	return true, fmt.Sprintf("%s is running as expected", name)
}
