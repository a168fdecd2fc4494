// Package eplanning provides a client for the NSW ePlanning Portal
// spatial viewer API.
package eplanning

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://api.apps1.nsw.gov.au/planning/viewersf/V1/ePlanningApi"
	defaultOrigin    = "https://www.planningportal.nsw.gov.au"
	defaultReferer   = "https://www.planningportal.nsw.gov.au/"
	defaultUserAgent = "Mozilla/5.0"
	defaultTimeout   = 10 * time.Second
)

// ErrNotFound reports that a queried entity does not exist upstream:
// an empty result set or a null linking identifier.
var ErrNotFound = eris.New("eplanning: not found")

// Client defines the ePlanning Portal lookups used to assemble a site
// record.
type Client interface {
	// LotInfo resolves a lot identifier (section/plan-type/plan-number)
	// to its first matching lot record.
	LotInfo(ctx context.Context, lotID string) (Record, error)
	// PropertyID resolves a cadastral id to a property id.
	PropertyID(ctx context.Context, cadID string) (string, error)
	// Address returns the display address for a property id.
	Address(ctx context.Context, propID string) (string, error)
	// Council returns the local council name for a property id.
	Council(ctx context.Context, propID string) (string, error)
	// Overlays returns the EPI overlay layers intersecting a lot.
	Overlays(ctx context.Context, cadID string) ([]Layer, error)
	// Boundary returns the raw boundary document for a lot. Geometry is
	// not interpreted here; callers get the document as-is.
	Boundary(ctx context.Context, cadID string) (json.RawMessage, error)
}

// Option configures the ePlanning client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP
// client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithLimiter sets a custom request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a new ePlanning Portal client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a rate-limited GET against an endpoint and decodes the
// JSON response into v.
func (c *httpClient) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrapf(err, "eplanning: %s rate limit", endpoint)
	}

	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return eris.Wrapf(err, "eplanning: %s build request", endpoint)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", defaultOrigin)
	req.Header.Set("Referer", defaultReferer)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "eplanning: %s request", endpoint)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(err, "eplanning: %s read body", endpoint)
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("eplanning: %s returned status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return eris.Wrapf(err, "eplanning: %s unmarshal response", endpoint)
	}

	return nil
}

func (c *httpClient) LotInfo(ctx context.Context, lotID string) (Record, error) {
	var lots []Record
	params := url.Values{
		"l":           {lotID},
		"noOfRecords": {"1"},
	}
	if err := c.get(ctx, "lot", params, &lots); err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return nil, eris.Wrapf(ErrNotFound, "eplanning: lot %q", lotID)
	}
	return lots[0], nil
}

func (c *httpClient) PropertyID(ctx context.Context, cadID string) (string, error) {
	var raw any
	params := url.Values{"cadId": {cadID}}
	if err := c.get(ctx, "property", params, &raw); err != nil {
		return "", err
	}
	if raw == nil {
		return "", eris.Wrapf(ErrNotFound, "eplanning: no property for cadastre %q", cadID)
	}
	id, ok := scalarString(raw)
	if !ok || id == "" {
		return "", eris.Errorf("eplanning: property response for cadastre %q is not a scalar id", cadID)
	}
	return id, nil
}

func (c *httpClient) Address(ctx context.Context, propID string) (string, error) {
	var raw any
	params := url.Values{
		"id":   {propID},
		"Type": {"property"},
	}
	if err := c.get(ctx, "address", params, &raw); err != nil {
		return "", err
	}

	// The endpoint has been observed returning both a bare string and
	// an object carrying the address field.
	switch t := raw.(type) {
	case string:
		return t, nil
	case map[string]any:
		if addr, ok := Record(t).GetString("address"); ok {
			return addr, nil
		}
	}
	return "", eris.Errorf("eplanning: address response for property %q has no address", propID)
}

func (c *httpClient) Council(ctx context.Context, propID string) (string, error) {
	var raw []any
	params := url.Values{"propId": {propID}}
	if err := c.get(ctx, "council", params, &raw); err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", eris.Wrapf(ErrNotFound, "eplanning: no council for property %q", propID)
	}
	if name, ok := scalarString(raw[0]); ok && name != "" {
		return name, nil
	}
	if m, ok := raw[0].(map[string]any); ok {
		if name, ok := Record(m).GetString("councilName"); ok {
			return name, nil
		}
	}
	return "", eris.Errorf("eplanning: council response for property %q has no name", propID)
}

func (c *httpClient) Overlays(ctx context.Context, cadID string) ([]Layer, error) {
	var layers []Layer
	params := url.Values{
		"type":   {"lot"},
		"id":     {cadID},
		"layers": {"epi"},
	}
	if err := c.get(ctx, "layerintersect", params, &layers); err != nil {
		return nil, err
	}
	return layers, nil
}

func (c *httpClient) Boundary(ctx context.Context, cadID string) (json.RawMessage, error) {
	var raw json.RawMessage
	params := url.Values{
		"id":   {cadID},
		"Type": {"lot"},
	}
	if err := c.get(ctx, "boundary", params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
