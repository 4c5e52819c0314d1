package verify

import "context"

// Verifier is the capability the conversion flow depends on for bot-check
// tokens. The concrete implementation talks to the verification provider
// over HTTP; tests substitute a fake.
type Verifier interface {
	// Load performs the provider handshake. It is safe to call again
	// after a failure, and a no-op once the verifier is ready.
	Load(ctx context.Context) error

	// State returns the current verification state.
	State() State

	// Execute requests a verification token for the given action. It
	// only succeeds in StateReady and never returns an empty token
	// without an error.
	Execute(ctx context.Context, action string) (string, error)

	// SetStateCallback registers a function invoked on every state
	// change.
	SetStateCallback(callback func(State))
}
