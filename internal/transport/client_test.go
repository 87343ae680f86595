package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isawnyu/pleiades-wikidata/internal/transport"
	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
)

func TestGetSetsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := transport.New()
	resp, err := client.Get(context.Background(), server.URL, "text/csv")
	require.NoError(t, err)

	body, err := transport.ReadResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, transport.DefaultUserAgent, gotUA)
	assert.Equal(t, "text/csv", gotAccept)
}

func TestPostFormRebuildsBodyAcrossRetries(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		bodies = append(bodies, r.PostForm.Get("query"))
		if len(bodies) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("done"))
	}))
	defer server.Close()

	client := transport.New(transport.WithBackoff(time.Millisecond))
	resp, err := client.PostForm(context.Background(), server.URL, url.Values{"query": {"SELECT ?x WHERE {}"}}, "text/csv")
	require.NoError(t, err)

	body, err := transport.ReadResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "done", string(body))

	// Every attempt must carry the full form body
	require.Len(t, bodies, 3)
	for _, b := range bodies {
		assert.Equal(t, "SELECT ?x WHERE {}", b)
	}
}

func TestRetriesExhausted(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := transport.New(
		transport.WithBackoff(time.Millisecond),
		transport.WithMaxRetries(2),
	)

	_, err := client.Get(context.Background(), server.URL, "text/csv")
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.True(t, errors.IsEndpointUnavailable(err))
}

func TestRateLimitHonorsRetryAfter(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := transport.New(transport.WithBackoff(time.Second))

	start := time.Now()
	resp, err := client.Get(context.Background(), server.URL, "text/csv")
	require.NoError(t, err)
	_, _ = transport.ReadResponse(resp)

	assert.Equal(t, 2, attempts)
	// Retry-After: 0 should override the one-second configured backoff
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestClientErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	defer server.Close()

	client := transport.New(transport.WithBackoff(time.Millisecond))
	resp, err := client.Get(context.Background(), server.URL, "text/csv")
	require.NoError(t, err)

	_, err = transport.ReadResponse(resp)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "malformed query", apiErr.Message)
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := transport.New(transport.WithBackoff(time.Minute))
	_, err := client.Get(ctx, server.URL, "text/csv")
	require.Error(t, err)
}
