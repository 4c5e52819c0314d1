// Package verify implements the client side of the bot-check integration.
// The provider is modelled as a small state machine: a handshake moves the
// client from loading to ready or failed, and only a ready client can
// request the per-conversion tokens the conversion service attaches to
// uploads.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/imgshift/imgshift/internal/httputil"
)

var (
	// ErrNotConfigured is returned when no site key is configured.
	ErrNotConfigured = errors.New("verification is not configured")

	// ErrNotReady is returned when a token is requested before the
	// handshake has succeeded.
	ErrNotReady = errors.New("verification is not ready")

	// ErrEmptyToken is returned when the provider answers with a blank
	// token.
	ErrEmptyToken = errors.New("verification provider returned an empty token")
)

const (
	anchorMaxRetries  = 1
	executeMaxRetries = 2

	defaultTimeout = 30 * time.Second
)

// Client talks to the verification provider. It starts in StateLoading
// (or StateNotConfigured without a site key) and transitions through the
// handshake performed by Load.
type Client struct {
	siteKey    string
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	state       State
	lastErr     error
	handshaking bool
	onState     func(State)
}

// NewClient creates a provider client for the given site key and provider
// base URL. A nil httpClient selects a default with a request timeout.
func NewClient(siteKey, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	state := StateLoading
	if strings.TrimSpace(siteKey) == "" {
		state = StateNotConfigured
	}

	return &Client{
		siteKey:    siteKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		state:      state,
	}
}

// SetStateCallback registers a function invoked on every state change.
func (c *Client) SetStateCallback(callback func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = callback
}

// State returns the current verification state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LastError returns the error from the most recent failed handshake.
func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

type anchorRequest struct {
	SiteKey string `json:"site_key"`
}

type executeRequest struct {
	SiteKey string `json:"site_key"`
	Action  string `json:"action"`
}

type executeResponse struct {
	Token string `json:"token"`
}

// Load performs the provider handshake. Ready clients return immediately,
// failed clients retry, and concurrent calls share one handshake.
func (c *Client) Load(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.state == StateNotConfigured:
		c.mu.Unlock()
		return ErrNotConfigured
	case c.state == StateReady:
		c.mu.Unlock()
		return nil
	case c.handshaking:
		c.mu.Unlock()
		return nil
	}
	c.handshaking = true
	c.mu.Unlock()

	c.setState(StateLoading)

	resp, err := httputil.PostJSONWithRetry(ctx, c.httpClient, c.baseURL+"/anchor", anchorRequest{SiteKey: c.siteKey}, anchorMaxRetries)
	if err != nil {
		return c.failHandshake(fmt.Errorf("verification handshake: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return c.failHandshake(fmt.Errorf("verification handshake rejected: %s", httputil.ErrorMessage(resp)))
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	c.mu.Lock()
	c.handshaking = false
	c.lastErr = nil
	c.mu.Unlock()

	c.setState(StateReady)
	return nil
}

// failHandshake records the error, moves the client to StateFailed, and
// returns the error for the caller.
func (c *Client) failHandshake(err error) error {
	c.mu.Lock()
	c.handshaking = false
	c.lastErr = err
	c.mu.Unlock()

	c.setState(StateFailed)
	return err
}

// Execute requests a verification token for the given action. The token
// is guaranteed non-empty on success.
func (c *Client) Execute(ctx context.Context, action string) (string, error) {
	state := c.State()
	switch {
	case state == StateNotConfigured:
		return "", ErrNotConfigured
	case !state.CanExecute():
		return "", fmt.Errorf("%w: current state is %s", ErrNotReady, state)
	}

	resp, err := httputil.PostJSONWithRetry(ctx, c.httpClient, c.baseURL+"/execute", executeRequest{SiteKey: c.siteKey, Action: action}, executeMaxRetries)
	if err != nil {
		return "", fmt.Errorf("requesting verification token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("verification rejected: %s", httputil.ErrorMessage(resp))
	}

	var payload executeResponse
	if err := httputil.DecodeJSON(resp, &payload); err != nil {
		return "", fmt.Errorf("reading verification token: %w", err)
	}

	if strings.TrimSpace(payload.Token) == "" {
		return "", ErrEmptyToken
	}
	return payload.Token, nil
}

// setState updates the state and notifies the callback outside the lock.
func (c *Client) setState(state State) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	callback := c.onState
	c.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}
