package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catBody = `[{"meta":{"id":"cat:1"},"hwi":{"hw":"cat"},"fl":"noun"},{"meta":{"id":"cat:2"},"hwi":{"hw":"cat"},"fl":"verb"}]`

func newTestClient(url string) *Client {
	return NewClient("secret", WithBaseURL(url), WithRetryDelay(time.Millisecond))
}

func TestClient_Fetch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hot dog", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catBody))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).Fetch(context.Background(), "  hot dog ")
	require.NoError(t, err)
	assert.JSONEq(t, catBody, string(body))
}

func TestClient_Lookup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catBody))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL+"/").Lookup(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "cat", res.Word)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "cat:2", res.Entries[1].Get("meta.id").String())
}

func TestClient_Fetch_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Fetch(context.Background(), "cat")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Fetch_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "cat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 418")
}

func TestClient_Fetch_RetryOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(catBody))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).Fetch(context.Background(), "cat")
	require.NoError(t, err)
	assert.NotEmpty(t, body)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Fetch_RetriesOnlyOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "cat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Fetch_NoRetryOn4xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "cat")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Fetch(ctx, "cat")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, calls.Load())
}

func TestClient_Fetch_EmptyWord(t *testing.T) {
	t.Parallel()

	_, err := NewClient("k").Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyWord)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("entries", func(t *testing.T) {
		res, err := Decode("cat", []byte(`[{"hwi":{"hw":"cat"}}, "stray", 3]`))
		require.NoError(t, err)
		assert.Len(t, res.Entries, 1)
	})

	t.Run("suggestions", func(t *testing.T) {
		_, err := Decode("catt", []byte(`["cat","cats"]`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)

		var sugg *SuggestionsError
		require.ErrorAs(t, err, &sugg)
		assert.Equal(t, "catt", sugg.Word)
		assert.Equal(t, []string{"cat", "cats"}, sugg.Suggestions)
		assert.Contains(t, err.Error(), "did you mean cat, cats?")
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := Decode("zzzx", []byte(`[]`))
		assert.ErrorIs(t, err, ErrNotFound)

		var sugg *SuggestionsError
		assert.False(t, errors.As(err, &sugg))
	})

	t.Run("invalid key text", func(t *testing.T) {
		_, err := Decode("cat", []byte(`Invalid API key. Not subscribed for this reference.`))
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := Decode("cat", []byte(`{"hwi":{"hw":"cat"}}`))
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("truncated json", func(t *testing.T) {
		_, err := Decode("cat", []byte(`[{"hwi":`))
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}
