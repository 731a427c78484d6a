// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRecordID is returned when a record is decoded without an "id" field.
var ErrRecordID = errors.New("record has no id")

// SyncRecord is the shape every syncable entity satisfies. The three
// metadata fields travel with every record; everything else the application
// stores on the entity is carried opaquely in Fields.
//
// Invariant: every mutation updates UpdatedAt and DeviceID together,
// atomically with the business-field change. This core never mutates
// business fields itself, so the invariant is enforced at write sites in
// the application layer and preserved verbatim here.
type SyncRecord struct {
	// ID is the entity identifier, unique within its entity type.
	ID string

	// UpdatedAt is the wall-clock timestamp (epoch milliseconds) of the
	// last mutation, set by the mutating device.
	UpdatedAt int64

	// DeviceID identifies the device that last wrote the record.
	DeviceID string

	// DeletedAt, when non-nil, marks the record as a tombstone: logically
	// deleted but still present so the deletion can propagate.
	DeletedAt *int64

	// Fields holds the business fields of the entity, opaque to the sync
	// core.
	Fields map[string]any
}

// Deleted reports whether the record is a tombstone.
func (r SyncRecord) Deleted() bool {
	return r.DeletedAt != nil
}

// reserved JSON keys lifted out of Fields on decode and re-added on encode.
const (
	keyID        = "id"
	keyUpdatedAt = "updatedAt"
	keyDeviceID  = "deviceId"
	keyDeletedAt = "deletedAt"
)

// MarshalJSON encodes the record as the flat application object: business
// fields at the top level with the sync metadata keys alongside them.
func (r SyncRecord) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		obj[k] = v
	}

	obj[keyID] = r.ID
	obj[keyUpdatedAt] = r.UpdatedAt
	obj[keyDeviceID] = r.DeviceID
	if r.DeletedAt != nil {
		obj[keyDeletedAt] = *r.DeletedAt
	}

	return json.Marshal(obj)
}

// UnmarshalJSON decodes the flat application object, extracting the sync
// metadata keys and leaving the remaining fields in Fields.
func (r *SyncRecord) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode sync record: %w", err)
	}

	id, ok := obj[keyID].(string)
	if !ok || id == "" {
		return ErrRecordID
	}

	rec := SyncRecord{ID: id}
	if ts, ok := toEpochMillis(obj[keyUpdatedAt]); ok {
		rec.UpdatedAt = ts
	}
	if dev, ok := obj[keyDeviceID].(string); ok {
		rec.DeviceID = dev
	}
	if ts, ok := toEpochMillis(obj[keyDeletedAt]); ok {
		rec.DeletedAt = &ts
	}

	delete(obj, keyID)
	delete(obj, keyUpdatedAt)
	delete(obj, keyDeviceID)
	delete(obj, keyDeletedAt)
	// Без бизнес-полей Fields остаётся nil: round-trip не должен менять
	// нулевое значение.
	if len(obj) > 0 {
		rec.Fields = obj
	}

	*r = rec
	return nil
}

// toEpochMillis converts a decoded JSON number to epoch milliseconds.
// encoding/json decodes numbers into float64; json.Number appears when the
// caller used a decoder with UseNumber.
func toEpochMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
