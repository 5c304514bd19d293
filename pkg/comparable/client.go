// Package comparable is a client for the remote comparable-search
// service. The service owns the scoring model; this package only
// speaks its wire contract.
package comparable

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://starboard-dsqy90evu-kunal-singhs-projects-f14fa826.vercel.app"

// Client finds comparable properties for a subject property.
type Client interface {
	Search(ctx context.Context, req Request, n int) ([]Result, error)
}

// Request is the JSON body for POST /comparable. The requested result
// count travels as the `n` query parameter, not in the body.
type Request struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	SquareFeet int     `json:"square_feet"`
	YearBuilt  int     `json:"year_built"`
	Zoning     string  `json:"zoning"`
}

// Result is one scored comparable. Score is authoritative; the
// breakdown is explanatory only and carries no enforced relationship
// to the overall score.
type Result struct {
	ID        string    `json:"id"`
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Property  Property  `json:"property"`
}

// Breakdown holds the four similarity sub-scores, each in [0,1].
type Breakdown struct {
	Location  float64 `json:"location"`
	Size      float64 `json:"size"`
	YearBuilt float64 `json:"year_built"`
	Zoning    float64 `json:"zoning"`
}

// Property describes the comparable property itself.
type Property struct {
	ID         string  `json:"id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	SquareFeet int     `json:"square_feet"`
	YearBuilt  int     `json:"year_built"`
	Zoning     string  `json:"zoning"`
	Address    string  `json:"address,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default service base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithTimeout overrides the default request timeout. Zero disables
// the timeout entirely.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a comparable-search client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search submits the subject property and returns the comparables in
// server rank order. Any non-2xx status is a uniform failure; the
// service does not distinguish error sub-kinds and neither do we.
// A failed search is never retried here - resubmission is explicit.
func (c *httpClient) Search(ctx context.Context, req Request, n int) ([]Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "comparable: marshal request")
	}

	url := c.baseURL + "/comparable?n=" + strconv.Itoa(n)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "comparable: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "comparable: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "comparable: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("comparable: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var results []Result
	if err := json.Unmarshal(respBody, &results); err != nil {
		return nil, eris.Wrap(err, "comparable: unmarshal response")
	}

	return results, nil
}
