package service

import "errors"

var (
	// ErrPairingRejected is returned when the peer declines a link request,
	// or when the local user declines an incoming one. Nothing is persisted.
	ErrPairingRejected = errors.New("pairing was rejected")

	// ErrAckTimeout is returned by a transfer sender when the peer does not
	// acknowledge the imported backup in time.
	ErrAckTimeout = errors.New("timed out waiting for the peer's acknowledgement")

	// ErrUnexpectedMessage is returned when the peer sends a message the
	// current session protocol cannot accept.
	ErrUnexpectedMessage = errors.New("unexpected message from peer")

	// ErrUnknownImportMode is returned for an import mode other than merge
	// or replace.
	ErrUnknownImportMode = errors.New("unknown import mode")
)
