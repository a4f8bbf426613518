// Package naver is a client for the Naver local search API.
package naver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://openapi.naver.com/v1/search/local.json"

// MaxDisplay is the largest page size the local search endpoint accepts.
const MaxDisplay = 5

// ErrUnauthorized means the client id or secret was rejected. Further calls
// with the same credentials will fail the same way.
var ErrUnauthorized = errors.New("naver: credentials rejected")

// Client searches Naver local listings.
type Client interface {
	SearchLocal(ctx context.Context, query string, display, start int) (*SearchResponse, error)
}

// SearchResponse is the local search envelope.
type SearchResponse struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Display int    `json:"display"`
	Items   []Item `json:"items"`
}

// Item is one listing. Title carries <b> highlight markup and MapX/MapY are
// planar (KATEC) coordinates encoded as strings.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

// Option configures the client.
type Option func(*restyClient)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(url string) Option {
	return func(c *restyClient) {
		c.url = url
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *restyClient) {
		c.http.SetTimeout(d)
	}
}

type restyClient struct {
	url  string
	http *resty.Client
}

// NewClient creates a local search client authenticated by client id and secret.
// Requests are not retried; callers log and skip failed queries.
func NewClient(clientID, clientSecret string, opts ...Option) Client {
	c := &restyClient{
		url: defaultBaseURL,
		http: resty.New().
			SetTimeout(15*time.Second).
			SetHeader("Accept", "application/json").
			SetHeader("X-Naver-Client-Id", clientID).
			SetHeader("X-Naver-Client-Secret", clientSecret),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *restyClient) SearchLocal(ctx context.Context, query string, display, start int) (*SearchResponse, error) {
	if display < 1 || display > MaxDisplay {
		display = MaxDisplay
	}
	if start < 1 {
		start = 1
	}

	var (
		result SearchResponse
		apiErr errorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":   query,
			"display": strconv.Itoa(display),
			"start":   strconv.Itoa(start),
			"sort":    "random",
		}).
		ForceContentType("application/json").
		SetResult(&result).
		SetError(&apiErr).
		Get(c.url)
	if err != nil {
		return nil, eris.Wrapf(err, "naver: search %q", query)
	}
	if resp.IsError() {
		if code := resp.StatusCode(); code == http.StatusUnauthorized || code == http.StatusForbidden {
			return nil, eris.Wrapf(ErrUnauthorized, "status %d: %s %s", code, apiErr.ErrorCode, apiErr.ErrorMessage)
		}
		if apiErr.ErrorCode != "" {
			return nil, eris.Errorf("naver: search %q: status %d: %s %s",
				query, resp.StatusCode(), apiErr.ErrorCode, apiErr.ErrorMessage)
		}
		return nil, eris.Errorf("naver: search %q: unexpected status %d", query, resp.StatusCode())
	}

	return &result, nil
}
