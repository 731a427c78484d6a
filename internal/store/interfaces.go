package store

import (
	"context"

	"github.com/balance-app/balance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository is the low-level local record store, one row per entity
// record, shared by every entity type.
type RecordRepository interface {
	// Get returns the record with the given id, including tombstones.
	// Returns [ErrRecordNotFound] when no row exists.
	Get(ctx context.Context, entityType models.EntityType, id string) (models.SyncRecord, error)

	// Upsert writes the record, replacing any existing row whole. The
	// write is a single statement so a reader never observes a partially
	// updated record.
	Upsert(ctx context.Context, entityType models.EntityType, record models.SyncRecord) error

	// List returns records of one type with updated_at strictly greater
	// than since. A nil since returns every record, tombstones included.
	List(ctx context.Context, entityType models.EntityType, since *int64) ([]models.SyncRecord, error)

	// ReplaceEntities clears every entity table named in groups and loads
	// the incoming records verbatim, all inside one transaction.
	ReplaceEntities(ctx context.Context, groups []models.EntityGroup) error
}

// MetaRepository stores the device-level key/value state that never syncs:
// this device's identity, the household pairing, and the last sync cursor.
type MetaRepository interface {
	// DeviceID returns this device's stable identifier, generating and
	// persisting one on first call.
	DeviceID(ctx context.Context) (string, error)

	// SetHousehold persists the shared household identifier and the paired
	// peer's device id after a successful pairing handshake.
	SetHousehold(ctx context.Context, householdID, peerDeviceID string) error

	// Household returns the persisted household and peer device ids; empty
	// strings when the device is not paired.
	Household(ctx context.Context) (householdID, peerDeviceID string, err error)

	// LastSyncAt returns the "changed since" cursor of the previous
	// incremental sync, or nil before the first sync.
	LastSyncAt(ctx context.Context) (*int64, error)

	// SetLastSyncAt moves the sync cursor.
	SetLastSyncAt(ctx context.Context, ts int64) error
}
