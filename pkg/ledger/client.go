// Package ledger is a client for the building register title-info service
// published on data.go.kr (getBrTitleInfo).
package ledger

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "http://apis.data.go.kr/1613000/BldRgstHubService/getBrTitleInfo"

// ErrMalformed is returned when a response parses as neither JSON nor XML.
var ErrMalformed = eris.New("ledger: malformed response")

// APIError is a non-success result code reported by the service itself.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return "ledger: api error " + e.Code + ": " + e.Message
}

// Item is one register record keyed by field name (bldNm, platPlc, ...).
type Item map[string]string

// Get returns the trimmed value of a field.
func (i Item) Get(key string) string {
	return strings.TrimSpace(i[key])
}

// Int returns a numeric field, or 0 when it is missing or not a number.
func (i Item) Int(key string) int {
	v := i.Get(key)
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

// Page is one page of results.
type Page struct {
	TotalCount int
	Items      []Item
}

// Client fetches register pages.
type Client interface {
	FetchPage(ctx context.Context, pageNo int) (*Page, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default endpoint.
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

// WithArea sets the sigungu and legal-dong codes queried.
func WithArea(sigunguCd, bjdongCd string) Option {
	return func(c *httpClient) {
		c.sigunguCd = sigunguCd
		c.bjdongCd = bjdongCd
	}
}

// WithRowsPerPage sets numOfRows.
func WithRowsPerPage(n int) Option {
	return func(c *httpClient) {
		c.rows = n
	}
}

type httpClient struct {
	serviceKey string
	baseURL    string
	sigunguCd  string
	bjdongCd   string
	rows       int
	http       *http.Client
}

// NewClient creates a register client. Gangnam-gu Yeoksam-dong is queried
// unless WithArea says otherwise.
func NewClient(serviceKey string, opts ...Option) Client {
	c := &httpClient{
		serviceKey: serviceKey,
		baseURL:    defaultBaseURL,
		sigunguCd:  "11680",
		bjdongCd:   "10300",
		rows:       100,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) FetchPage(ctx context.Context, pageNo int) (*Page, error) {
	params := url.Values{
		"serviceKey": {c.serviceKey},
		"sigunguCd":  {c.sigunguCd},
		"bjdongCd":   {c.bjdongCd},
		"numOfRows":  {strconv.Itoa(c.rows)},
		"pageNo":     {strconv.Itoa(pageNo)},
		"resultType": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("ledger: unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	return parse(body, resp.Header.Get("Content-Type"))
}

// parse decodes JSON first and falls back to XML once, either because the
// service declared XML or because the JSON decode failed. An APIError from
// either decoder is final.
func parse(body []byte, contentType string) (*Page, error) {
	if !strings.Contains(strings.ToLower(contentType), "xml") {
		page, err := parseJSON(body)
		if err == nil {
			return page, nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
	}

	page, err := parseXML(body)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, eris.Wrapf(ErrMalformed, "%v", err)
	}
	return page, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
