package eventbrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"eventbrite-mcp/pkg/logging"

	"github.com/patrickmn/go-cache"
)

const (
	defaultBaseURL  = "https://www.eventbriteapi.com/v3"
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute

	subsystem = "EventbriteClient"
)

// APIError is a failed call against the Eventbrite API, either a non-2xx
// response or a transport-level failure.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Eventbrite API error: %s", e.Description)
}

// Client is the authenticated Eventbrite API client. It is constructed once
// at startup and is safe for concurrent use; nothing is mutated after
// construction except the internal response cache, which synchronizes itself.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *cache.Cache
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCacheTTL sets the expiration for cached venue and category responses.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// NewClient creates an Eventbrite API client bound to the given private
// token. The token must not be empty.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("eventbrite API token must not be empty")
	}

	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		cache: cache.New(defaultCacheTTL, 2*defaultCacheTTL),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetOrganizations returns the organizations the token's user belongs to.
func (c *Client) GetOrganizations(ctx context.Context) ([]Organization, error) {
	var out struct {
		Organizations []Organization `json:"organizations"`
		Pagination    Pagination     `json:"pagination"`
	}
	if err := c.get(ctx, "/users/me/organizations/", nil, &out); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

// ListEventsByOrganization lists the events of one organization. Only the
// present fields of params among {q, start_date, end_date, page, page_size}
// are forwarded as query parameters.
func (c *Client) ListEventsByOrganization(ctx context.Context, orgID string, params SearchParams) (*SearchResult, error) {
	var out SearchResult
	path := fmt.Sprintf("/organizations/%s/events/", url.PathEscape(orgID))
	if err := c.get(ctx, path, params.queryValues(), &out); err != nil {
		return nil, err
	}
	if out.Events == nil {
		out.Events = []Event{}
	}
	return &out, nil
}

// SearchEvents is a best-effort substitute for Eventbrite's retired free-text
// search endpoint: it lists the first organization's events. An account with
// no organizations yields an empty result, not an error.
func (c *Client) SearchEvents(ctx context.Context, params SearchParams) (*SearchResult, error) {
	orgs, err := c.GetOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	if len(orgs) == 0 {
		logging.Debug(subsystem, "No organizations available, returning empty search result")
		return &SearchResult{
			Events:     []Event{},
			Pagination: Pagination{PageCount: 0},
		}, nil
	}

	// The API's ordering decides which organization is searched.
	return c.ListEventsByOrganization(ctx, orgs[0].ID, params)
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out Event
	path := fmt.Sprintf("/events/%s/", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVenue fetches a single venue by id. Venues are immutable enough that
// responses are served from a TTL cache.
func (c *Client) GetVenue(ctx context.Context, id string) (*Venue, error) {
	cacheKey := "venue:" + id
	if cached, found := c.cache.Get(cacheKey); found {
		logging.Debug(subsystem, "Returning cached venue %s", id)
		return cached.(*Venue), nil
	}

	var out Venue
	path := fmt.Sprintf("/venues/%s/", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, &out, cache.DefaultExpiration)
	return &out, nil
}

// GetCategories returns Eventbrite's category taxonomy. The taxonomy is
// effectively static, so responses are served from a TTL cache.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	const cacheKey = "categories"
	if cached, found := c.cache.Get(cacheKey); found {
		logging.Debug(subsystem, "Returning cached categories")
		return cached.([]Category), nil
	}

	var out struct {
		Categories []Category `json:"categories"`
		Pagination Pagination `json:"pagination"`
		Locale     string     `json:"locale,omitempty"`
	}
	if err := c.get(ctx, "/categories/", nil, &out); err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, out.Categories, cache.DefaultExpiration)
	return out.Categories, nil
}

// get performs an authenticated GET against the API and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	logging.Debug(subsystem, "GET %s", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Description: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorFromResponse builds an APIError from a non-2xx response, preferring
// the error_description field of the API's error payload when present.
func errorFromResponse(resp *http.Response) error {
	description := resp.Status

	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		var payload struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
			StatusCode       int    `json:"status_code"`
		}
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.ErrorDescription != "" {
			description = payload.ErrorDescription
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Description: description,
	}
}

// queryValues renders the forwardable SearchParams fields. Location,
// Categories and Price have no counterpart on the organization-events
// endpoint and are deliberately not rendered.
func (p SearchParams) queryValues() url.Values {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.StartDate != "" {
		q.Set("start_date", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("end_date", p.EndDate)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}
