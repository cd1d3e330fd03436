package eventbrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-token", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_EmptyToken(t *testing.T) {
	client, err := NewClient("")
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestGet_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"organizations": [], "pagination": {"page_count": 0}}`)
	}))

	_, err := client.GetOrganizations(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestSearchEvents_NoOrganizations(t *testing.T) {
	var eventsCalls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me/organizations/":
			fmt.Fprint(w, `{"organizations": [], "pagination": {"page_count": 0}}`)
		default:
			atomic.AddInt32(&eventsCalls, 1)
			http.NotFound(w, r)
		}
	}))

	result, err := client.SearchEvents(context.Background(), SearchParams{Query: "music"})
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	assert.NotNil(t, result.Events, "events must serialize as [], not null")
	assert.Equal(t, 0, result.Pagination.PageCount)
	assert.Equal(t, int32(0), atomic.LoadInt32(&eventsCalls), "no organization-events call expected")
}

func TestSearchEvents_UsesFirstOrganization(t *testing.T) {
	var eventsPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me/organizations/":
			fmt.Fprint(w, `{"organizations": [{"id": "org-1"}, {"id": "org-2"}], "pagination": {}}`)
		case "/organizations/org-1/events/":
			eventsPath = r.URL.Path
			fmt.Fprint(w, `{"events": [{"id": "e1", "name": {"text": "Gig"}, "is_free": true}], "pagination": {"page_count": 1}}`)
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	result, err := client.SearchEvents(context.Background(), SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, "/organizations/org-1/events/", eventsPath)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "e1", result.Events[0].ID)
}

func TestListEventsByOrganization_QueryParams(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"events": [], "pagination": {}}`)
	}))

	params := SearchParams{
		Query:     "jazz",
		StartDate: "2026-01-01T00:00:00Z",
		Page:      2,
		// Inert filters must not reach the wire.
		Price:      "free",
		Categories: []string{"103"},
		Location:   &Location{Latitude: 1, Longitude: 2},
	}
	_, err := client.ListEventsByOrganization(context.Background(), "org-1", params)
	require.NoError(t, err)

	assert.Equal(t, "jazz", gotQuery["q"][0])
	assert.Equal(t, "2026-01-01T00:00:00Z", gotQuery["start_date"][0])
	assert.Equal(t, "2", gotQuery["page"][0])
	assert.NotContains(t, gotQuery, "end_date")
	assert.NotContains(t, gotQuery, "page_size")
	assert.NotContains(t, gotQuery, "price")
	assert.NotContains(t, gotQuery, "categories")
	assert.NotContains(t, gotQuery, "location.latitude")
}

func TestGetEvent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/123/", r.URL.Path)
		fmt.Fprint(w, `{"id": "123", "name": {"text": "Expo"}, "venue_id": "v1", "is_free": false}`)
	}))

	event, err := client.GetEvent(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", event.ID)
	assert.Equal(t, "Expo", event.Name.Text)
	assert.Equal(t, "v1", event.VenueID)
	assert.Nil(t, event.Venue)
}

func TestGetVenue_Cached(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"id": "v1", "name": "Hall", "address": {"address_1": "1 Main St", "city": "Springfield", "postal_code": "12345", "country": "US"}}`)
	}))

	first, err := client.GetVenue(context.Background(), "v1")
	require.NoError(t, err)
	second, err := client.GetVenue(context.Background(), "v1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch must hit the cache")
	assert.Equal(t, first, second)
	assert.Equal(t, "Hall", second.Name)
	assert.Equal(t, "Springfield", second.Address.City)
}

func TestGetCategories_RoundTrip(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"categories": [{"id": "1", "name": "Music"}, {"id": "2", "name": "Food & Drink"}], "pagination": {}}`)
	}))

	categories, err := client.GetCategories(context.Background())
	require.NoError(t, err)

	// Re-serializing must reproduce the upstream array exactly: no field
	// loss, no reordering.
	data, err := json.Marshal(categories)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": "1", "name": "Music"}, {"id": "2", "name": "Food & Drink"}]`, string(data))

	_, err = client.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch must hit the cache")
}

func TestErrorMapping_DescriptionFromPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "NOT_FOUND", "error_description": "The event you requested does not exist.", "status_code": 404}`)
	}))

	_, err := client.GetEvent(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Eventbrite API error: The event you requested does not exist.", err.Error())
}

func TestErrorMapping_NoPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetVenue(context.Background(), "v-err")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "Eventbrite API error:")
}

func TestErrorMapping_TransportError(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	_, err := client.GetCategories(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "Eventbrite API error:")
}
