// Package zoominfo provides a bearer-token REST client for the ZoomInfo
// match, enrich, and search endpoints.
package zoominfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the ZoomInfo API.
const defaultBaseURL = "https://api.zoominfo.com"

// Client defines the ZoomInfo API operations used by the pipeline.
type Client interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	EnrichContact(ctx context.Context, token string, req ContactEnrichRequest) (*ContactEnrichResponse, error)
	EnrichCompany(ctx context.Context, token string, req CompanyEnrichRequest) (*CompanyEnrichResponse, error)
	SearchContact(ctx context.Context, token string, req ContactSearchRequest) (*ContactSearchResponse, error)
}

// APIError is returned when ZoomInfo responds with a non-2xx status. Body
// carries the raw error payload so it can be recorded onto the failing
// record verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zoominfo: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets a per-second rate limit across all API calls.
// A burst equal to the integer portion of rps is allowed.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new ZoomInfo client.
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
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	var resp authResponse
	if err := c.post(ctx, "/authenticate", "", authRequest{Username: username, Password: password}, &resp); err != nil {
		return "", eris.Wrap(err, "zoominfo: authenticate")
	}
	if resp.JWT == "" {
		return "", eris.New("zoominfo: authenticate: empty jwt in response")
	}
	return resp.JWT, nil
}

func (c *httpClient) EnrichContact(ctx context.Context, token string, req ContactEnrichRequest) (*ContactEnrichResponse, error) {
	var resp ContactEnrichResponse
	if err := c.post(ctx, "/enrich/contact", token, req, &resp); err != nil {
		return nil, eris.Wrap(err, "zoominfo: enrich contact")
	}
	return &resp, nil
}

func (c *httpClient) EnrichCompany(ctx context.Context, token string, req CompanyEnrichRequest) (*CompanyEnrichResponse, error) {
	var resp CompanyEnrichResponse
	if err := c.post(ctx, "/enrich/company-master", token, req, &resp); err != nil {
		return nil, eris.Wrap(err, "zoominfo: enrich company")
	}
	return &resp, nil
}

func (c *httpClient) SearchContact(ctx context.Context, token string, req ContactSearchRequest) (*ContactSearchResponse, error) {
	var resp ContactSearchResponse
	if err := c.post(ctx, "/search/contact", token, req, &resp); err != nil {
		return nil, eris.Wrap(err, "zoominfo: search contact")
	}
	return &resp, nil
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *httpClient) post(ctx context.Context, path, token string, body any, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "rate limit")
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
