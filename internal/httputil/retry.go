// Package httputil provides small HTTP helpers shared by the verification
// and conversion clients.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// BackoffBase controls the starting delay for retry waits on HTTP 429
// responses. Tests override this to avoid real sleeps.
var BackoffBase = 2 * time.Second

const defaultMaxRetries = 2

// errorBodyLimit bounds how much of an error response body is read when
// extracting a message.
const errorBodyLimit = 512

// PostJSONWithRetry marshals payload, POSTs it to url as application/json,
// and retries on HTTP 429 with a doubling delay starting at BackoffBase.
// The body is rebuilt for every attempt. When maxRetries is 0 the default
// (2) is used. If the context is cancelled during a backoff wait the
// function returns ctx.Err(). After exhausting retries the last 429
// response is returned so the caller can inspect it.
func PostJSONWithRetry(ctx context.Context, client *http.Client, url string, payload any, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries; hand the 429 back as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before waiting.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(1<<attempt) * BackoffBase
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// DecodeJSON decodes the response body into v and closes it.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// ErrorMessage extracts a short human-readable message from an error
// response. It prefers a JSON body of the form {"error": "..."}, then a
// short plain-text body, and falls back to the HTTP status line. The body
// is consumed and closed.
func ErrorMessage(resp *http.Response) string {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err == nil && len(data) > 0 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return payload.Error
		}

		text := strings.TrimSpace(string(data))
		if text != "" && isDisplayable(text) {
			return text
		}
	}

	return resp.Status
}

// isDisplayable reports whether text is a short single-line message safe to
// surface in the UI.
func isDisplayable(text string) bool {
	if len(text) > 200 {
		return false
	}
	for _, r := range text {
		if r == '\n' || r == '\r' || (unicode.IsControl(r) && r != '\t') {
			return false
		}
	}
	return true
}
