// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/balance-app/balance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ImportMode selects how an incoming snapshot is applied to the store.
type ImportMode string

const (
	// ImportMerge applies last-write-wins per record. Safe to apply the
	// same snapshot repeatedly.
	ImportMerge ImportMode = "merge"

	// ImportReplace clears every entity table the snapshot contains and
	// loads the incoming records verbatim. Full-backup imports only.
	ImportReplace ImportMode = "replace"
)

// MergeResolver decides which of two versions of the same logical record
// survives a merge.
type MergeResolver interface {
	// Resolve returns the winning record and whether the remote copy won
	// and must be written to the local store. A nil local means the record
	// does not exist locally; the remote copy then always wins.
	// Last-write-wins is whole-record; a winning tombstone is preserved.
	Resolve(local *models.SyncRecord, remote models.SyncRecord) (models.SyncRecord, bool)
}

// DataService is the store-facing half of the merge engine: snapshot export
// and import.
type DataService interface {
	// ExportSnapshot builds a snapshot of every syncable entity type with
	// updated_at strictly greater than since. A nil since exports every
	// record (first sync). Device-local entity types are never included.
	ExportSnapshot(ctx context.Context, since *int64) (models.Snapshot, error)

	// ExportFullBackup builds a snapshot of every entity type, device-local
	// ones included, with no "changed since" filter. Used for whole-device
	// migration and on-disk backups.
	ExportFullBackup(ctx context.Context) (models.Snapshot, error)

	// ImportSnapshot validates the snapshot and applies it in the given
	// mode, returning the number of records written. Validation failures
	// reject the snapshot before any store mutation.
	ImportSnapshot(ctx context.Context, snap models.Snapshot, mode ImportMode) (int, error)
}

// Connection is the transport surface a session protocol drives. It is
// satisfied by *transport.Manager.
type Connection interface {
	// Send frames the payload and writes it immediately; fails unless the
	// channel is open. For small control messages.
	Send(payload string) error

	// SendWithProgress writes frames one at a time under backpressure,
	// reporting each written frame. For large payloads.
	SendWithProgress(ctx context.Context, payload string, onProgress func(sent, total int)) error

	// OnMessage registers an observer fired once per fully reassembled
	// logical message.
	OnMessage(fn func(payload string))

	// OnChunkProgress registers an observer fired once per received frame
	// of a multi-frame message.
	OnChunkProgress(fn func(received, total int))

	// Close releases the connection. Idempotent.
	Close()
}

// SyncSession runs the bidirectional incremental sync protocol over an open
// connection.
type SyncSession interface {
	// Run exports this device's changes since the given cursor, transmits
	// them while concurrently receiving and merging the peer's snapshot,
	// and reports the session totals. The caller owns the connection and
	// the sync cursor.
	Run(ctx context.Context, conn Connection, since *int64, progress func(models.SyncProgress)) (models.MergeSummary, error)
}

// TransferSession runs the one-way full transfer protocol.
type TransferSession interface {
	// RunSender transmits a full backup and waits for the peer's
	// acknowledgement, returning the record count the peer imported.
	RunSender(ctx context.Context, conn Connection, progress func(models.SyncProgress)) (int, error)

	// RunReceiver waits for exactly one incoming backup, imports it in the
	// given mode, and acknowledges with the imported record count.
	RunReceiver(ctx context.Context, conn Connection, mode ImportMode, progress func(models.SyncProgress)) (int, error)
}

// PairingSession runs the three-message pairing handshake and the first
// sync that follows a successful link.
type PairingSession interface {
	// RunInitiator offers a freshly generated household id to the peer.
	// On acceptance it persists the pairing and runs a first incremental
	// sync (no "since" filter) over the same connection.
	RunInitiator(ctx context.Context, conn Connection) (models.MergeSummary, error)

	// RunResponder waits for a link request and asks confirm for the local
	// user's decision. On approval it persists the pairing, replies with
	// link-accept, and participates in the first sync; on decline it
	// replies with link-reject and persists nothing.
	RunResponder(ctx context.Context, conn Connection, confirm func(models.LinkRequest) bool) (models.MergeSummary, error)
}
