package transport

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// DataChannel is the bidirectional message pipe the Manager drives. It
// mirrors the surface of a pion data channel so the Manager's state machine,
// framing, and backpressure logic are testable against a fake.
//
// All On* registrations replace the previous handler; the Manager is the
// only registrar.
type DataChannel interface {
	Label() string

	// SendText writes one frame. The channel must be open.
	SendText(payload string) error

	// BufferedAmount reports the bytes queued locally but not yet handed
	// to the network.
	BufferedAmount() uint64

	// SetBufferedAmountLowThreshold arms OnBufferedAmountLow to fire when
	// BufferedAmount drains to or below the threshold.
	SetBufferedAmountLowThreshold(threshold uint64)
	OnBufferedAmountLow(fn func())

	OnMessage(fn func(payload string))
	OnOpen(fn func())
	OnClose(fn func())
	OnError(fn func(err error))

	Close() error
}

// negotiator performs the offer/answer descriptor exchange and surfaces the
// logical sync channel once the underlying connection produces it: on the
// offering side immediately at creation, on the answering side when the
// peer's channel arrives.
type negotiator interface {
	// CreateOffer allocates the connection, opens the sync channel, and
	// returns the local offer descriptor once candidate gathering
	// completes. The context bounds gathering.
	CreateOffer(ctx context.Context) (string, error)

	// AcceptOffer consumes the peer's offer and returns the local answer
	// descriptor, with the same gathering semantics as CreateOffer.
	AcceptOffer(ctx context.Context, offer string) (string, error)

	// ApplyAnswer consumes the peer's answer on the offering side.
	ApplyAnswer(answer string) error

	// Channels delivers the sync channel exactly once.
	Channels() <-chan DataChannel

	Close() error
}
