package verify

// State describes the lifecycle of the verification provider client.
type State string

const (
	// StateNotConfigured means no site key is set. The state is terminal
	// and conversion stays disabled with an explanation.
	StateNotConfigured State = "not_configured"

	// StateLoading means the provider handshake has not completed yet.
	StateLoading State = "loading"

	// StateReady means the handshake succeeded and tokens can be
	// requested.
	StateReady State = "ready"

	// StateFailed means the handshake failed. Load can be called again
	// to retry.
	StateFailed State = "failed"
)

// String returns the state identifier.
func (s State) String() string {
	return string(s)
}

// CanExecute reports whether token requests are allowed in this state.
func (s State) CanExecute() bool {
	return s == StateReady
}
