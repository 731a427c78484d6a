package service

import (
	"github.com/balance-app/balance-sync/models"
)

// mergeResolver is the concrete implementation of MergeResolver.
// It performs a purely in-memory comparison of two record versions; no
// storage layer or logger is required because the operation is stateless
// and produces no side effects.
type mergeResolver struct{}

// NewMergeResolver constructs a MergeResolver ready for use.
func NewMergeResolver() MergeResolver {
	return &mergeResolver{}
}

// Resolve implements MergeResolver.
//
// The record with the strictly greater UpdatedAt wins, whole-record; there
// is no field-level merge. On exact timestamp equality the local copy is
// kept — a deterministic tie-break, never arrival order. A winning record
// whose DeletedAt is set stays a tombstone so the deletion itself can
// propagate on a later sync.
func (r *mergeResolver) Resolve(local *models.SyncRecord, remote models.SyncRecord) (models.SyncRecord, bool) {
	if local == nil {
		return remote, true
	}
	if remote.UpdatedAt > local.UpdatedAt {
		return remote, true
	}
	return *local, false
}
