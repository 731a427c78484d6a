// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// balance-sync sessions and the CLI.
//
// All Msg* constants are human-readable, actionable message strings shown to
// the user when a session fails. Keeping them in one place ensures consistent
// wording throughout the application.
package app

import (
	"errors"

	"github.com/balance-app/balance-sync/internal/service"
	"github.com/balance-app/balance-sync/internal/transport"
	"github.com/balance-app/balance-sync/models"
)

const (
	// MsgGatherTimeout is shown when this device cannot discover its own
	// network paths within the gathering window.
	MsgGatherTimeout = "could not prepare a connection code — check this device's network and try again"

	// MsgConnectTimeout is shown when the two devices never reach an open
	// channel: typically the peer has not scanned or entered the code yet.
	MsgConnectTimeout = "timed out waiting for the other device to connect — make sure it scanned the code, then start over"

	// MsgBadDescriptor is shown when a pasted or scanned connection code
	// cannot be decoded.
	MsgBadDescriptor = "that connection code is not valid — copy it again, complete and unmodified"

	// MsgChannelFailed is shown when an established connection breaks
	// mid-session.
	MsgChannelFailed = "the connection to the other device broke — both sides should start a fresh session"

	// MsgConnectionClosed is shown when the peer ends the session early.
	MsgConnectionClosed = "the other device closed the connection before the session finished"

	// MsgPairingRejected is shown when the peer declines the link request.
	MsgPairingRejected = "the other device declined the pairing request"

	// MsgAckTimeout is shown to a backup sender whose peer never confirmed
	// the import.
	MsgAckTimeout = "timed out waiting for the other device to confirm the transfer — verify the import finished there"

	// MsgUnexpectedMessage is shown when the peer speaks a different
	// protocol or version.
	MsgUnexpectedMessage = "the other device sent something this session cannot understand — make sure both run the same app version"

	// MsgSnapshotRejected is shown when an incoming snapshot fails
	// validation. Nothing was imported.
	MsgSnapshotRejected = "the received data could not be validated and was not imported — update both devices and retry"

	// MsgGenericSessionError is the fallback when no specific mapping
	// applies.
	MsgGenericSessionError = "the session failed — start a fresh attempt from the beginning"
)

// Describe maps a session or transport error to the actionable message shown
// to the user. Every retry is a fresh session from scratch, and the wording
// reflects that.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, transport.ErrGatherTimeout):
		return MsgGatherTimeout
	case errors.Is(err, transport.ErrConnectTimeout):
		return MsgConnectTimeout
	case errors.Is(err, transport.ErrBadDescriptor):
		return MsgBadDescriptor
	case errors.Is(err, transport.ErrChannelFailed):
		return MsgChannelFailed
	case errors.Is(err, transport.ErrClosed), errors.Is(err, transport.ErrNotOpen):
		return MsgConnectionClosed
	case errors.Is(err, service.ErrPairingRejected):
		return MsgPairingRejected
	case errors.Is(err, service.ErrAckTimeout):
		return MsgAckTimeout
	case errors.Is(err, service.ErrUnexpectedMessage):
		return MsgUnexpectedMessage
	case errors.Is(err, models.ErrSnapshotFormat),
		errors.Is(err, models.ErrSnapshotVersion),
		errors.Is(err, models.ErrSnapshotCounts):
		return MsgSnapshotRejected
	default:
		return MsgGenericSessionError
	}
}
