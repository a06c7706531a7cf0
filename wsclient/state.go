package wsclient

// ReadyState represents the current state of the WebSocket connection.
// The numeric values are the ones exposed as readyState.
type ReadyState uint16

const (
	// StateConnecting means the opening handshake has not completed yet.
	StateConnecting ReadyState = iota

	// StateOpen means the connection is established and can send.
	StateOpen

	// StateClosing means the closing handshake has started.
	StateClosing

	// StateClosed means the connection is closed or could not be opened.
	StateClosed
)

// String returns the string representation of a ReadyState.
func (s ReadyState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
