package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONWithRetrySuccess(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ping", payload["action"])

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := PostJSONWithRetry(context.Background(), server.Client(), server.URL, map[string]string{"action": "ping"}, 2)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestPostJSONWithRetryRetriesAfter429(t *testing.T) {
	oldDelay := BackoffBase
	BackoffBase = 1 * time.Millisecond
	defer func() { BackoffBase = oldDelay }()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)

		// The body must be rebuilt for every attempt.
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, body)

		if n < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := PostJSONWithRetry(context.Background(), server.Client(), server.URL, map[string]string{"action": "ping"}, 3)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestPostJSONWithRetryExhaustsRetries(t *testing.T) {
	oldDelay := BackoffBase
	BackoffBase = 1 * time.Millisecond
	defer func() { BackoffBase = oldDelay }()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	resp, err := PostJSONWithRetry(context.Background(), server.Client(), server.URL, nil, 1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The final 429 is handed back for the caller to inspect.
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestPostJSONWithRetryContextCancelled(t *testing.T) {
	oldDelay := BackoffBase
	BackoffBase = 500 * time.Millisecond
	defer func() { BackoffBase = oldDelay }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := PostJSONWithRetry(ctx, server.Client(), server.URL, nil, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDecodeJSON(t *testing.T) {
	resp := &http.Response{
		Body: io.NopCloser(strings.NewReader(`{"token":"abc123"}`)),
	}

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, DecodeJSON(resp, &payload))
	assert.Equal(t, "abc123", payload.Token)
}

func TestDecodeJSONMalformed(t *testing.T) {
	resp := &http.Response{
		Body: io.NopCloser(strings.NewReader(`{"token":`)),
	}

	var payload struct {
		Token string `json:"token"`
	}
	err := DecodeJSON(resp, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		body     string
		expected string
	}{
		{
			name:     "json error body",
			status:   "400 Bad Request",
			body:     `{"error":"unsupported target format"}`,
			expected: "unsupported target format",
		},
		{
			name:     "plain text body",
			status:   "403 Forbidden",
			body:     "verification rejected\n",
			expected: "verification rejected",
		},
		{
			name:     "empty body falls back to status",
			status:   "502 Bad Gateway",
			body:     "",
			expected: "502 Bad Gateway",
		},
		{
			name:     "multiline body falls back to status",
			status:   "500 Internal Server Error",
			body:     "first line\nsecond line",
			expected: "500 Internal Server Error",
		},
		{
			name:     "oversized body falls back to status",
			status:   "503 Service Unavailable",
			body:     strings.Repeat("x", 400),
			expected: "503 Service Unavailable",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := &http.Response{
				Status: test.status,
				Body:   io.NopCloser(strings.NewReader(test.body)),
			}
			assert.Equal(t, test.expected, ErrorMessage(resp))
		})
	}
}
