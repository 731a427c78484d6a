// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSyncRecord_UnmarshalJSON_FlatObject verifies that the flat application
// object is split into metadata fields and opaque business fields.
func TestSyncRecord_UnmarshalJSON_FlatObject(t *testing.T) {
	raw := `{"id":"p-1","updatedAt":1700000000123,"deviceId":"dev-a","name":"Ada","tags":["friend"]}`

	var rec SyncRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	assert.Equal(t, "p-1", rec.ID)
	assert.Equal(t, int64(1700000000123), rec.UpdatedAt)
	assert.Equal(t, "dev-a", rec.DeviceID)
	assert.Nil(t, rec.DeletedAt)
	assert.Equal(t, "Ada", rec.Fields["name"])
	// метаданные не должны остаться среди бизнес-полей
	assert.NotContains(t, rec.Fields, "id")
	assert.NotContains(t, rec.Fields, "updatedAt")
}

func TestSyncRecord_UnmarshalJSON_Tombstone(t *testing.T) {
	raw := `{"id":"t-9","updatedAt":5,"deviceId":"dev-b","deletedAt":7}`

	var rec SyncRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	require.True(t, rec.Deleted())
	assert.Equal(t, int64(7), *rec.DeletedAt)
}

// TestSyncRecord_UnmarshalJSON_NoBusinessFields: Fields нормализуется в nil,
// чтобы запись после передачи по каналу сравнивалась с локальной как есть.
func TestSyncRecord_UnmarshalJSON_NoBusinessFields(t *testing.T) {
	seeded := SyncRecord{ID: "m-1", UpdatedAt: 42, DeviceID: "dev-a"}

	raw, err := json.Marshal(seeded)
	require.NoError(t, err)

	var decoded SyncRecord
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Nil(t, decoded.Fields)
	assert.Equal(t, seeded, decoded)
}

func TestSyncRecord_UnmarshalJSON_MissingID(t *testing.T) {
	var rec SyncRecord
	err := json.Unmarshal([]byte(`{"updatedAt":1}`), &rec)
	require.ErrorIs(t, err, ErrRecordID)
}

// TestSyncRecord_MarshalJSON_RoundTrip verifies the flat form survives a
// marshal/unmarshal cycle with metadata and business fields intact.
func TestSyncRecord_MarshalJSON_RoundTrip(t *testing.T) {
	deleted := int64(42)
	rec := SyncRecord{
		ID:        "g-3",
		UpdatedAt: 41,
		DeviceID:  "dev-c",
		DeletedAt: &deleted,
		Fields:    map[string]any{"title": "call mom", "done": true},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var got SyncRecord
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, rec.DeviceID, got.DeviceID)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, deleted, *got.DeletedAt)
	assert.Equal(t, "call mom", got.Fields["title"])
	assert.Equal(t, true, got.Fields["done"])
}

func TestEntityType_Syncable(t *testing.T) {
	for _, syncable := range SyncableTypes() {
		assert.True(t, syncable.Syncable(), string(syncable))
	}
	assert.False(t, Settings.Syncable())
	assert.False(t, SnoozeState.Syncable())
	assert.False(t, EntityType("bogus").Syncable())
}

func TestAllTypes_IncludesDeviceLocal(t *testing.T) {
	all := AllTypes()
	assert.Contains(t, all, Settings)
	assert.Contains(t, all, SnoozeState)
	assert.Len(t, all, len(SyncableTypes())+2)
}
