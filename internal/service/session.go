package service

import (
	"context"
	"time"
)

// replyTimeout bounds the wait for the peer's single reply message: the
// transfer acknowledgement and the pairing accept/reject decision.
const replyTimeout = 120 * time.Second

// inbox buffers reassembled messages arriving on a connection so a session
// can consume them sequentially. It must be attached before the session
// sends anything, or a fast peer's reply could arrive with nobody listening.
type inbox struct {
	messages chan string
}

func newInbox(conn Connection) *inbox {
	in := &inbox{messages: make(chan string, 16)}
	conn.OnMessage(func(payload string) {
		select {
		case in.messages <- payload:
		default:
			// the session protocols never keep more than a couple of
			// messages in flight; an overflow means a misbehaving peer
		}
	})
	return in
}

func (in *inbox) next(ctx context.Context) (string, error) {
	select {
	case msg := <-in.messages:
		return msg, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
