package google

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// Nearby search statuses.
const (
	StatusOK            = "OK"
	StatusZeroResults   = "ZERO_RESULTS"
	StatusRequestDenied = "REQUEST_DENIED"
	StatusInvalid       = "INVALID_REQUEST"
	StatusOverQuota     = "OVER_QUERY_LIMIT"
)

// ErrRequestDenied means the key was rejected. Further calls with the same
// key will fail the same way.
var ErrRequestDenied = errors.New("google: request denied")

// StatusError is any other non-OK status.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return "google: status " + e.Status
	}
	return "google: status " + e.Status + ": " + e.Message
}

// Client performs Google Places API operations.
type Client interface {
	NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error)
}

// NearbySearchRequest selects places of one type around a point. When
// PageToken is set the other fields are still sent but the token decides
// the result page.
type NearbySearchRequest struct {
	Lat       float64
	Lng       float64
	RadiusM   int
	Type      string
	Language  string
	PageToken string
}

// NearbySearchResponse is the response from Nearby Search.
type NearbySearchResponse struct {
	Status        string  `json:"status"`
	ErrorMessage  string  `json:"error_message"`
	Results       []Place `json:"results"`
	NextPageToken string  `json:"next_page_token"`
}

// Place represents a place returned by the API.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	Geometry         Geometry `json:"geometry"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	BusinessStatus   string   `json:"business_status"`
}

// Geometry holds the place location.
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng is a WGS84 point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Google Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NearbySearch returns one page of results. ZERO_RESULTS is an empty
// response, REQUEST_DENIED is ErrRequestDenied and any other non-OK status
// is a *StatusError.
func (c *httpClient) NearbySearch(ctx context.Context, r NearbySearchRequest) (*NearbySearchResponse, error) {
	lang := r.Language
	if lang == "" {
		lang = "ko"
	}
	params := url.Values{
		"key":      {c.apiKey},
		"location": {strconv.FormatFloat(r.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(r.Lng, 'f', -1, 64)},
		"radius":   {strconv.Itoa(r.RadiusM)},
		"type":     {r.Type},
		"language": {lang},
	}
	if r.PageToken != "" {
		params.Set("pagetoken", r.PageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "google: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "google: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "google: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("google: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result NearbySearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "google: unmarshal response")
	}

	switch result.Status {
	case StatusOK:
		return &result, nil
	case StatusZeroResults:
		return &NearbySearchResponse{Status: result.Status}, nil
	case StatusRequestDenied:
		return nil, eris.Wrap(ErrRequestDenied, result.ErrorMessage)
	default:
		return nil, &StatusError{Status: result.Status, Message: result.ErrorMessage}
	}
}
