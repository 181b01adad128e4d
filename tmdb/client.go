package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "marquee/1.0"
)

// Client represents a TMDB API client
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	language    string
	region      string
	userAgent   string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewClient creates a new TMDB client. At least one of WithAccessToken or
// WithAPIKey must be supplied.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid tmdb URL %q: %w", baseURL, err)
	}

	client := &Client{
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.accessToken == "" && client.apiKey == "" {
		return nil, ErrMissingCredentials
	}

	return client, nil
}

// Search queries the catalog for movies matching term
func (c *Client) Search(ctx context.Context, term string) ([]Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyQuery
	}
	return c.list(ctx, searchPath, url.Values{"query": {term}})
}

// Category fetches the first page of the list backing category
func (c *Client) Category(ctx context.Context, category Category) ([]Movie, error) {
	ep, ok := categoryEndpoints[category]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(category))
	}
	params := url.Values{}
	for k, v := range ep.params {
		params[k] = append([]string(nil), v...)
	}
	return c.list(ctx, ep.path, params)
}

// TestConnection verifies the credentials against the configuration endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	body, err := c.doRequest(ctx, http.MethodGet, "/configuration", nil)
	if err != nil {
		return err
	}
	if !json.Valid(body) {
		return &ParseError{Endpoint: "/configuration", Err: fmt.Errorf("invalid JSON")}
	}
	return nil
}

func (c *Client) list(ctx context.Context, endpoint string, params url.Values) ([]Movie, error) {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, err
	}

	// Results shadows the embedded field so an absent key stays distinguishable
	var envelope struct {
		ListResponse
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	if envelope.Results == nil {
		return nil, &ParseError{Endpoint: endpoint, Err: errMissingResults}
	}

	response := envelope.ListResponse
	if err := json.Unmarshal(envelope.Results, &response.Results); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(response.Results)).
		Int("total_results", response.TotalResults).
		Msg("Retrieved movies from TMDB")

	if response.Results == nil {
		return []Movie{}, nil
	}
	return response.Results, nil
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.region != "" && endpoint != searchPath {
		params.Set("region", c.region)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		// literal '+' is already escaped as %2B, so any remaining '+' is a space
		reqURL += "?" + strings.ReplaceAll(params.Encode(), "+", "%20")
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Trace().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    statusMessage(body),
		}
	}

	return body, nil
}

// statusMessage extracts the status_message field TMDB attaches to errors
func statusMessage(body []byte) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.StatusMessage
}
