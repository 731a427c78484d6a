package transport

import "errors"

// Sentinel errors surfaced by the connection manager. Setup and transport
// failures are fatal to the attempt: nothing is retried internally, and a
// retry is always a fresh Manager starting from scratch.
var (
	// ErrNotOpen is returned by send operations when the channel has not
	// reached the open state or has already left it.
	ErrNotOpen = errors.New("connection channel is not open")

	// ErrClosed is returned to waiters when Close is called while they are
	// suspended.
	ErrClosed = errors.New("connection was closed")

	// ErrGatherTimeout is returned when local connectivity candidates
	// could not be gathered within the allotted time.
	ErrGatherTimeout = errors.New("timed out gathering connection candidates")

	// ErrConnectTimeout is returned when the channel fails to open within
	// the overall connection timeout.
	ErrConnectTimeout = errors.New("timed out waiting for connection to open")

	// ErrChannelFailed is returned after a channel-level error event. The
	// Manager is terminal at that point.
	ErrChannelFailed = errors.New("connection channel failed")

	// ErrBadDescriptor is returned when an incoming connection descriptor
	// cannot be decoded.
	ErrBadDescriptor = errors.New("malformed connection descriptor")

	// ErrInvalidState is returned when an operation is called from a state
	// it is not defined for (e.g. CreateOffer on a used Manager).
	ErrInvalidState = errors.New("operation not allowed in current connection state")
)
