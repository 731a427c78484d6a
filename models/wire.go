// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire message discriminators. Every control message sent over the open
// channel is a JSON object carrying one of these in its "type" field; the
// only untyped document on the wire is a bare Snapshot, recognized by its
// "format" field instead.
const (
	MsgLinkRequest      = "link-request"
	MsgLinkAccept       = "link-accept"
	MsgLinkReject       = "link-reject"
	MsgTransferBackup   = "transfer-backup"
	MsgTransferComplete = "transfer-complete"
)

var (
	ErrNotJSONMessage  = errors.New("message is not a JSON object")
	ErrUnknownMessage  = errors.New("unknown message type")
	ErrIncompleteField = errors.New("message is missing a required field")
)

// LinkRequest opens the pairing handshake. The initiator generates a fresh
// household identifier and offers it to the peer.
type LinkRequest struct {
	Type        string `json:"type"`
	DeviceID    string `json:"deviceId"`
	HouseholdID string `json:"householdId"`
}

// LinkAccept is the responder's confirmation, sent after local user
// approval.
type LinkAccept struct {
	Type     string `json:"type"`
	DeviceID string `json:"deviceId"`
}

// LinkReject declines a pairing request. Carries nothing; on receipt the
// connection is closed and no state is persisted.
type LinkReject struct {
	Type string `json:"type"`
}

// TransferBackup carries a full-device backup during a one-way transfer.
type TransferBackup struct {
	Type     string   `json:"type"`
	Snapshot Snapshot `json:"snapshot"`
}

// TransferComplete acknowledges an imported backup with the record count
// the receiver actually wrote.
type TransferComplete struct {
	Type            string `json:"type"`
	ImportedRecords int    `json:"importedRecords"`
}

// NewLinkRequest builds a link-request message.
func NewLinkRequest(deviceID, householdID string) LinkRequest {
	return LinkRequest{Type: MsgLinkRequest, DeviceID: deviceID, HouseholdID: householdID}
}

// NewLinkAccept builds a link-accept message.
func NewLinkAccept(deviceID string) LinkAccept {
	return LinkAccept{Type: MsgLinkAccept, DeviceID: deviceID}
}

// NewLinkReject builds a link-reject message.
func NewLinkReject() LinkReject {
	return LinkReject{Type: MsgLinkReject}
}

// NewTransferBackup wraps a full backup for the wire.
func NewTransferBackup(snap Snapshot) TransferBackup {
	return TransferBackup{Type: MsgTransferBackup, Snapshot: snap}
}

// NewTransferComplete builds the transfer acknowledgement.
func NewTransferComplete(imported int) TransferComplete {
	return TransferComplete{Type: MsgTransferComplete, ImportedRecords: imported}
}

// messageHeader is the minimal probe decoded before trusting the payload
// shape: the discriminant first, then the rest.
type messageHeader struct {
	Type   string `json:"type"`
	Format string `json:"format"`
}

// DecodeWireMessage parses one application-level message received over the
// channel. It returns one of *LinkRequest, *LinkAccept, *LinkReject,
// *TransferBackup, *TransferComplete, or *Snapshot (for the untyped
// incremental-sync document).
func DecodeWireMessage(raw string) (any, error) {
	var header messageHeader
	if err := json.Unmarshal([]byte(raw), &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSONMessage, err)
	}

	switch header.Type {
	case MsgLinkRequest:
		var msg LinkRequest
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", header.Type, err)
		}
		if msg.DeviceID == "" || msg.HouseholdID == "" {
			return nil, fmt.Errorf("%w: %s needs deviceId and householdId", ErrIncompleteField, header.Type)
		}
		return &msg, nil

	case MsgLinkAccept:
		var msg LinkAccept
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", header.Type, err)
		}
		if msg.DeviceID == "" {
			return nil, fmt.Errorf("%w: %s needs deviceId", ErrIncompleteField, header.Type)
		}
		return &msg, nil

	case MsgLinkReject:
		return &LinkReject{Type: MsgLinkReject}, nil

	case MsgTransferBackup:
		var msg TransferBackup
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", header.Type, err)
		}
		return &msg, nil

	case MsgTransferComplete:
		var msg TransferComplete
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", header.Type, err)
		}
		return &msg, nil

	case "":
		// Untyped documents are only ever snapshots.
		if header.Format == SnapshotFormat {
			var snap Snapshot
			if err := json.Unmarshal([]byte(raw), &snap); err != nil {
				return nil, fmt.Errorf("decode snapshot: %w", err)
			}
			return &snap, nil
		}
		return nil, ErrUnknownMessage

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, header.Type)
	}
}
