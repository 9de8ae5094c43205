// Package metadata queries an upstream movie-metadata service to enrich
// proposals with poster, release year, and runtime information. Enrichment
// is best-effort; failures never block a proposal.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/movie-night/movie-night/internal/domain"
)

// ErrNotFound is returned when the upstream has no record for the title.
var ErrNotFound = errors.New("metadata: not found")

// Client defines the contract for querying the upstream metadata API.
type Client interface {
	Fetch(ctx context.Context, title string) (*domain.Metadata, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed metadata client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse metadata url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Fetch retrieves metadata by title.
func (c *HTTPClient) Fetch(ctx context.Context, title string) (*domain.Metadata, error) {
	rel := &url.URL{Path: "/metadata"}
	q := rel.Query()
	q.Set("title", title)
	rel.RawQuery = q.Encode()
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode metadata response: %w", err)
		}
		return convertToMetadata(payload), nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.logger.Printf("metadata: unexpected status %d for title %q", resp.StatusCode, title)
		return nil, fmt.Errorf("metadata: upstream returned %d", resp.StatusCode)
	}
}

type apiResponse struct {
	Title          string  `json:"title"`
	PosterURL      *string `json:"posterUrl"`
	ReleaseYear    *int    `json:"releaseYear"`
	RuntimeMinutes *int    `json:"runtimeMinutes"`
}

func convertToMetadata(payload apiResponse) *domain.Metadata {
	meta := &domain.Metadata{
		ReleaseYear: payload.ReleaseYear,
		RuntimeMins: payload.RuntimeMinutes,
	}
	if payload.PosterURL != nil && strings.TrimSpace(*payload.PosterURL) != "" {
		trimmed := strings.TrimSpace(*payload.PosterURL)
		meta.PosterURL = &trimmed
	}
	return meta
}
