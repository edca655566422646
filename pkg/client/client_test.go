package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
}

func TestListEntries(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "e1", "url": "https://api.test/a?x=1", "transactionType": "request",
			 "request": {"method": "GET", "headers": [["Accept", "*/*"]]},
			 "response": {"statusCode": 200, "headers": [["Content-Type", "application/json"]], "body": "eyJhIjoxfQ=="}},
			{"id": "e2", "url": "https://api.test/b", "transactionType": "request",
			 "request": {"method": "POST"}, "response": null}
		]`))
	})

	entries, err := c.ListEntries(context.Background(), "active", &ListEntriesOptions{Bookmarked: true})
	require.NoError(t, err)
	assert.Equal(t, "/sessions/active/entries", gotPath)
	assert.Equal(t, "bookmarked=", gotQuery)

	require.Len(t, entries, 2)
	assert.Equal(t, "GET", *entries[0].Request.Method)
	require.NotNil(t, entries[0].Response)
	assert.Equal(t, 200, *entries[0].Response.StatusCode)
	assert.Equal(t, "application/json", entries[0].Response.Headers.Get("content-type"))
	body, err := DecodeBody(entries[0].Response.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
	assert.Nil(t, entries[1].Response)
}

func TestGetSession(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/s%201", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id": "s 1", "name": "Checkout", "entryIds": ["a", "b"]}`))
	})

	s, err := c.GetSession(context.Background(), "s 1")
	require.NoError(t, err)
	assert.Equal(t, "Checkout", s.Name)
	assert.Equal(t, []string{"a", "b"}, s.EntryIDs)
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"json error", http.StatusNotFound, `{"error": "session not found"}`, "session not found"},
		{"plain error", http.StatusInternalServerError, "boom\n", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListSessions(context.Background())
			require.Error(t, err)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestOptions(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = New(WithBaseURL("http://h:1/"), WithTimeout(2*time.Second))
	assert.Equal(t, "http://h:1", c.BaseURL())
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
}

func TestDecodeBody(t *testing.T) {
	out, err := DecodeBody(nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	enc := base64.StdEncoding.EncodeToString([]byte("hi"))
	out, err = DecodeBody(&enc)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))

	bad := "%%%"
	_, err = DecodeBody(&bad)
	assert.Error(t, err)
}
