// Raw HTTP client for the Spotify Web API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Per-call ceiling; a timed-out call is reported as an error and treated
	// by callers the same way as a non-200 response for that call's scope.
	defaultTimeout = 10 * time.Second
)

// upstreamRate caps outgoing calls per second so the fan-out in the track
// filter cannot trip Spotify's rate limiting. The relay itself never
// interprets a 429; it surfaces the status like any other non-2xx.
var upstreamRate = rate.Limit(20)

// Response represents a raw upstream response with status and body.
//
// Status and parsed JSON are passed through verbatim; interpretation is left
// to the caller.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues authenticated GET/POST calls against the Spotify API base URL.
// It never retries and never special-cases any status code.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
}

// NewClient creates a raw Spotify API client.
//
// An empty baseURL selects the production API; a nil client selects
// [http.DefaultClient].
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(upstreamRate, int(upstreamRate)),
		timeout:    defaultTimeout,
	}
}

// Get performs an authenticated GET request to the specified path and returns the raw response.
func (c *Client) Get(ctx context.Context, path, accessToken string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, accessToken, nil)
}

// Post performs an authenticated POST request with the given JSON body and returns the raw response.
func (c *Client) Post(ctx context.Context, path, accessToken string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, accessToken, body)
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body any) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request canceled: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
