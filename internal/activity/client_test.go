package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Page(t *testing.T) {
	created := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	var gotPath, gotAuth, gotPage, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Feed{
			Entries: []Entry{{
				ID:        7,
				ProjectID: "p1",
				TaskID:    "t1",
				Action:    ActionCreated,
				Actor:     "server",
				Summary:   "Write report",
				CreatedAt: created,
			}},
			Pagination: NewPagination(2, 10, 11),
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, WithToken("secret"))
	feed, err := c.Page(context.Background(), "side project", 2, 10)
	require.NoError(t, err)

	assert.Equal(t, "/api/projects/side%20project/activity", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "10", gotLimit)

	require.Len(t, feed.Entries, 1)
	assert.Equal(t, ActionCreated, feed.Entries[0].Action)
	assert.True(t, created.Equal(feed.Entries[0].CreatedAt))
	assert.Equal(t, 2, feed.Pagination.TotalPages)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"entries":null,"pagination":{"page":1,"limit":20,"total":0,"total_pages":0}}`))
	}))
	defer srv.Close()

	feed, err := NewClient(srv.URL, time.Second).Page(context.Background(), "work", 1, 20)
	require.NoError(t, err)
	assert.False(t, hasAuth)
	assert.NotNil(t, feed.Entries)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"project not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Page(context.Background(), "nope", 1, 20)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "project not found", statusErr.Message)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Page(context.Background(), "work", 1, 20)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "boom", statusErr.Message)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond).Page(context.Background(), "work", 1, 20)
	assert.Error(t, err)
}

func TestClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Page(context.Background(), "work", 1, 20)
	assert.ErrorContains(t, err, "decoding activity")
}
