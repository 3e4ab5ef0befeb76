package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneJSON = `[{"id":1,"name":"Dune","author":"Herbert","genres":["Sci-Fi"],"stars":"4.8","img":"dune.jpg"}]`

func newTestClient(t *testing.T, base string) *Client {
	t.Helper()
	c, err := NewClient(base, WithRateLimit(0, 0))
	require.NoError(t, err)
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:3000", u.Host)

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:1234/api", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

func TestClient_FetchAllDecodesCatalogInServerOrder(t *testing.T) {
	t.Parallel()

	var gotPath, gotUA, gotAccept, gotRequestID, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"id": 2, "name": "Emma", "author": "Austen", "genres": ["Classic", " "], "stars": 4, "img": " emma.jpg "},
  {"id": "abc", "name": "Dune", "author": "Herbert", "genres": null, "stars": "abc"},
  {"id": 2, "name": "Emma (copy)", "author": "Austen", "stars": true}
]`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	books, err := c.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, "/books", gotPath)
	assert.Empty(t, gotQuery)
	assert.True(t, strings.HasPrefix(gotUA, "shelf/"), "User-Agent = %q", gotUA)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)

	assert.Equal(t, BookID("2"), books[0].ID)
	assert.Equal(t, []string{"Classic"}, books[0].Genres)
	assert.Equal(t, "emma.jpg", books[0].Img)
	assert.Equal(t, 4.0, books[0].Rating())

	assert.Equal(t, BookID("abc"), books[1].ID)
	assert.Equal(t, []string{}, books[1].Genres)
	assert.False(t, books[1].HasCover())
	assert.Equal(t, 0.0, books[1].Rating())

	// duplicate ids are kept as sent
	assert.Equal(t, books[0].ID, books[2].ID)
	assert.Equal(t, 0.0, books[2].Rating())
}

func TestClient_FetchAllKeepsBasePathPrefix(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(duneJSON))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL+"/v1/")
	books, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v1/books", gotPath)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)
}

func TestClient_FailuresAreNetworkErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantText   string
	}{
		{
			name:       "server error",
			handler:    func(w http.ResponseWriter, r *http.Request) { http.Error(w, "nope", http.StatusInternalServerError) },
			wantStatus: http.StatusInternalServerError,
			wantText:   "returned status 500",
		},
		{
			name:       "not found",
			handler:    func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) },
			wantStatus: http.StatusNotFound,
			wantText:   "returned status 404",
		},
		{
			name:     "malformed json",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{not-json")) },
			wantText: "decode response",
		},
		{
			name:     "object instead of array",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"books":[]}`)) },
			wantText: "decode response",
		},
		{
			name: "record without name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":1,"author":"Herbert"}]`))
			},
			wantText: "missing name",
		},
		{
			name: "record without id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"name":"Dune","author":"Herbert"}]`))
			},
			wantText: "missing id",
		},
		{
			name: "id of the wrong type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":{"x":1},"name":"Dune","author":"Herbert"}]`))
			},
			wantText: "decode response",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			t.Cleanup(server.Close)

			c := newTestClient(t, server.URL)
			books, err := c.FetchAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, books)

			var netErr *NetworkError
			require.True(t, errors.As(err, &netErr), "error %T is not a *NetworkError", err)
			assert.Equal(t, tc.wantStatus, netErr.StatusCode)
			assert.Equal(t, http.MethodGet, netErr.Method)
			assert.Contains(t, err.Error(), tc.wantText)
			assert.Contains(t, err.Error(), "fetch catalog")
		})
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c := newTestClient(t, base)
	_, err := c.FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.StatusCode)
	assert.Contains(t, err.Error(), "execute request")
}

func TestClient_CancelledContextIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(duneJSON))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_FetchBookEscapesID(t *testing.T) {
	t.Parallel()

	var gotEscaped string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscaped = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id":"a b/c","name":"Dune","author":"Herbert","stars":"4.5"}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	book, err := c.FetchBook(context.Background(), BookID("a b/c"))
	require.NoError(t, err)
	assert.Equal(t, "/books/a%20b%2Fc", gotEscaped)
	assert.Equal(t, BookID("a b/c"), book.ID)
	assert.Equal(t, 4.5, book.Rating())
}

func TestClient_FetchBookRequiresID(t *testing.T) {
	c := newTestClient(t, "127.0.0.1:1")
	_, err := c.FetchBook(context.Background(), BookID("  "))
	assert.Error(t, err)
	assert.False(t, IsNetworkError(err))
}

func TestClient_CreatePostsDraft(t *testing.T) {
	t.Parallel()

	var gotMethod, gotContentType string
	var gotDraft Draft
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotDraft)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"name":"Dune","author":"Herbert","genres":["Sci-Fi"],"stars":"5"}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	book, err := c.Create(context.Background(), Draft{
		Name:   "  Dune ",
		Author: "Herbert",
		Genres: ParseGenres("Sci-Fi, ,"),
		Stars:  " 5 ",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Dune", gotDraft.Name)
	assert.Equal(t, []string{"Sci-Fi"}, gotDraft.Genres)
	assert.Equal(t, "5", gotDraft.Stars)
	assert.Equal(t, BookID("7"), book.ID)
}

func TestClient_CreateRejectsInvalidDraftWithoutRequest(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	_, err := c.Create(context.Background(), Draft{Name: "Dune"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author is required")
	assert.False(t, called)
}

func TestNilClient(t *testing.T) {
	var c *Client
	ctx := context.Background()

	_, err := c.FetchAll(ctx)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, ErrNilClient)
	assert.Equal(t, "fetch catalog: GET: client is nil", err.Error())

	_, err = c.FetchBook(ctx, "1")
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, ErrNilClient)

	_, err = c.Create(ctx, Draft{Name: "Dune", Author: "Herbert"})
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, ErrNilClient)

	assert.Empty(t, c.BaseURL())
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithRateLimit(0.01, 1))
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, 1, hits, "the limited call never reaches the server")
}

func TestClient_WithUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithRateLimit(0, 0), WithUserAgent("  shelf-test/1  "))
	require.NoError(t, err)
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shelf-test/1", gotUA)
}
