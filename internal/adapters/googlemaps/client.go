package googlemaps

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Google Maps web services host.
const DefaultBaseURL = "https://maps.googleapis.com"

// ErrMissingCredential is returned by every call when no API key is configured.
// Callers treat it like any other lookup failure (offline layout-only mode).
var ErrMissingCredential = errors.New("google maps: api key is not configured")

// Client implements ports.Oracle on top of the Google Maps web services:
//   - Geocoding
//   - Places "find place from text"
//   - Directions (with alternatives for transit)
//   - Distance Matrix
//
// Every HTTP round-trip is bounded by the client timeout and transient
// failures are retried with backoff. The client is safe for concurrent use.
type Client struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	language   string
	maxRetries int
}

// Options tune a Client; zero values select defaults.
type Options struct {
	BaseURL    string
	Language   string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

// NewClient builds a client. An empty apiKey is accepted: the client then
// fails every call with ErrMissingCredential without touching the network.
func NewClient(apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}

	session := opts.HTTPClient
	if session == nil {
		session = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		session:    session,
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		language:   opts.Language,
		maxRetries: opts.MaxRetries,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// apiStatusError is a non-OK "status" field in an otherwise successful response.
type apiStatusError struct {
	Status  string
	Message string
}

func (e *apiStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("google maps status %s", e.Status)
	}
	return fmt.Sprintf("google maps status %s: %s", e.Status, e.Message)
}

// checkStatus separates "no result" statuses from hard errors.
// It returns (false, nil) for OK, (true, nil) for no result.
func checkStatus(status, message string) (noResult bool, err error) {
	switch status {
	case "OK":
		return false, nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return true, nil
	}
	return false, &apiStatusError{Status: status, Message: message}
}
