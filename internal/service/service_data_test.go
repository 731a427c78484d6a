// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/models"
)

func newTestDataService(t *testing.T) (DataService, *memRecords) {
	t.Helper()
	records := newMemRecords()
	return NewDataService(records, logger.Nop()), records
}

func seed(t *testing.T, records *memRecords, entityType models.EntityType, recs ...models.SyncRecord) {
	t.Helper()
	for _, rec := range recs {
		require.NoError(t, records.Upsert(context.Background(), entityType, rec))
	}
}

func TestDataService_ExportSnapshot_SyncablePolicyOnly(t *testing.T) {
	svc, records := newTestDataService(t)
	seed(t, records, models.People, models.SyncRecord{ID: "p1", UpdatedAt: 100, DeviceID: "a"})
	seed(t, records, models.Settings, models.SyncRecord{ID: "s1", UpdatedAt: 100, DeviceID: "a"})
	seed(t, records, models.SnoozeState, models.SyncRecord{ID: "z1", UpdatedAt: 100, DeviceID: "a"})

	snap, err := svc.ExportSnapshot(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, snap.Validate())

	types := exportedTypes(snap)
	assert.Contains(t, types, models.People)
	// устройство-локальные типы не покидают устройство
	assert.NotContains(t, types, models.Settings)
	assert.NotContains(t, types, models.SnoozeState)
	assert.Equal(t, 1, snap.TotalRecords)
	assert.Len(t, snap.Entities, len(models.SyncableTypes()))
}

func TestDataService_ExportSnapshot_SinceFilterIsStrict(t *testing.T) {
	svc, records := newTestDataService(t)
	seed(t, records, models.Tasks,
		models.SyncRecord{ID: "old", UpdatedAt: 100, DeviceID: "a"},
		models.SyncRecord{ID: "boundary", UpdatedAt: 200, DeviceID: "a"},
		models.SyncRecord{ID: "new", UpdatedAt: 201, DeviceID: "a"},
	)

	since := int64(200)
	snap, err := svc.ExportSnapshot(context.Background(), &since)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.TotalRecords)
	assert.Equal(t, "new", groupFor(t, snap, models.Tasks).Records[0].ID)
}

func TestDataService_ExportFullBackup_IncludesDeviceLocalTypes(t *testing.T) {
	svc, records := newTestDataService(t)
	seed(t, records, models.People, models.SyncRecord{ID: "p1", UpdatedAt: 100, DeviceID: "a"})
	seed(t, records, models.Settings, models.SyncRecord{ID: "s1", UpdatedAt: 100, DeviceID: "a"})

	snap, err := svc.ExportFullBackup(context.Background())
	require.NoError(t, err)

	types := exportedTypes(snap)
	assert.Contains(t, types, models.People)
	assert.Contains(t, types, models.Settings)
	assert.Contains(t, types, models.SnoozeState)
	assert.Equal(t, 2, snap.TotalRecords)
	assert.Len(t, snap.Entities, len(models.AllTypes()))
}

func TestDataService_ImportSnapshot_RejectsBeforeTouchingStore(t *testing.T) {
	svc, records := newTestDataService(t)
	seed(t, records, models.People, models.SyncRecord{ID: "keep", UpdatedAt: 100, DeviceID: "a"})

	tests := []struct {
		name    string
		mutate  func(snap *models.Snapshot)
		wantErr error
	}{
		{
			name:    "wrong format",
			mutate:  func(snap *models.Snapshot) { snap.Format = "other-app" },
			wantErr: models.ErrSnapshotFormat,
		},
		{
			name:    "version from the future",
			mutate:  func(snap *models.Snapshot) { snap.Version = models.SnapshotVersion + 1 },
			wantErr: models.ErrSnapshotVersion,
		},
		{
			name:    "count mismatch",
			mutate:  func(snap *models.Snapshot) { snap.TotalRecords = 99 },
			wantErr: models.ErrSnapshotCounts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotOf(models.People, models.SyncRecord{ID: "incoming", UpdatedAt: 500, DeviceID: "b"})
			tt.mutate(&snap)

			imported, err := svc.ImportSnapshot(context.Background(), snap, ImportReplace)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, imported)

			// store untouched
			assert.Len(t, records.all(models.People), 1)
		})
	}
}

func TestDataService_ImportSnapshot_UnknownMode(t *testing.T) {
	svc, _ := newTestDataService(t)

	_, err := svc.ImportSnapshot(context.Background(), snapshotOf(models.People), ImportMode("append"))
	require.ErrorIs(t, err, ErrUnknownImportMode)
}

func TestDataService_ImportMerge_LastWriteWins(t *testing.T) {
	svc, records := newTestDataService(t)
	deleted := int64(900)
	seed(t, records, models.People,
		models.SyncRecord{ID: "newer-local", UpdatedAt: 1000, DeviceID: "a"},
		models.SyncRecord{ID: "older-local", UpdatedAt: 100, DeviceID: "a"},
	)

	snap := snapshotOf(models.People,
		models.SyncRecord{ID: "newer-local", UpdatedAt: 500, DeviceID: "b"},
		models.SyncRecord{ID: "older-local", UpdatedAt: 800, DeviceID: "b"},
		models.SyncRecord{ID: "brand-new", UpdatedAt: 700, DeviceID: "b"},
		models.SyncRecord{ID: "tombstone", UpdatedAt: 901, DeviceID: "b", DeletedAt: &deleted},
	)

	imported, err := svc.ImportSnapshot(context.Background(), snap, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 3, imported)

	people := records.all(models.People)
	assert.Equal(t, "a", people["newer-local"].DeviceID, "newer local copy must survive")
	assert.Equal(t, "b", people["older-local"].DeviceID, "newer remote copy must win")
	assert.Contains(t, people, "brand-new")

	// tombstone written, not removed
	require.Contains(t, people, "tombstone")
	assert.True(t, people["tombstone"].Deleted())
}

func TestDataService_ImportMerge_Idempotent(t *testing.T) {
	svc, records := newTestDataService(t)
	seed(t, records, models.Goals, models.SyncRecord{ID: "g1", UpdatedAt: 100, DeviceID: "a"})

	snap := snapshotOf(models.Goals,
		models.SyncRecord{ID: "g1", UpdatedAt: 500, DeviceID: "b"},
		models.SyncRecord{ID: "g2", UpdatedAt: 600, DeviceID: "b"},
	)

	first, err := svc.ImportSnapshot(context.Background(), snap, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 2, first)
	after := records.all(models.Goals)

	second, err := svc.ImportSnapshot(context.Background(), snap, ImportMerge)
	require.NoError(t, err)
	assert.Zero(t, second, "re-applying the same snapshot must change nothing")
	assert.Equal(t, after, records.all(models.Goals))
}

func TestDataService_ImportReplace_LeavesOnlySnapshotRecords(t *testing.T) {
	svc, records := newTestDataService(t)
	seed(t, records, models.Tasks,
		models.SyncRecord{ID: "stale-1", UpdatedAt: 100, DeviceID: "a"},
		models.SyncRecord{ID: "stale-2", UpdatedAt: 9999, DeviceID: "a"},
	)

	snap := snapshotOf(models.Tasks, models.SyncRecord{ID: "fresh", UpdatedAt: 50, DeviceID: "b"})

	imported, err := svc.ImportSnapshot(context.Background(), snap, ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	tasks := records.all(models.Tasks)
	assert.Len(t, tasks, 1)
	assert.Contains(t, tasks, "fresh")
}

func TestDataService_Import_SkipsUnknownEntityType(t *testing.T) {
	svc, records := newTestDataService(t)

	snap := models.Snapshot{
		Format:  models.SnapshotFormat,
		Version: models.SnapshotVersion,
		Entities: []models.EntityGroup{
			{Type: "carrier_pigeons", Records: []models.SyncRecord{{ID: "x", UpdatedAt: 1, DeviceID: "b"}}, Count: 1},
			{Type: models.People, Records: []models.SyncRecord{{ID: "p1", UpdatedAt: 1, DeviceID: "b"}}, Count: 1},
		},
		TotalRecords: 2,
	}

	imported, err := svc.ImportSnapshot(context.Background(), snap, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Contains(t, records.all(models.People), "p1")
}

// TestDataService_EndToEndMerge: device A exports
// three changed records since T (two updates, one tombstone); device B,
// starting from a different local state, imports in merge mode.
func TestDataService_EndToEndMerge(t *testing.T) {
	deviceA, recordsA := newTestDataService(t)
	deviceB, recordsB := newTestDataService(t)

	const sinceT = int64(1000)
	deleted := int64(2500)

	seed(t, recordsA, models.People,
		models.SyncRecord{ID: "unchanged", UpdatedAt: 500, DeviceID: "a"},
		models.SyncRecord{ID: "updated-1", UpdatedAt: 2000, DeviceID: "a", Fields: map[string]any{"name": "Ira"}},
		models.SyncRecord{ID: "updated-2", UpdatedAt: 2100, DeviceID: "a", Fields: map[string]any{"name": "Oleg"}},
		models.SyncRecord{ID: "removed", UpdatedAt: 2500, DeviceID: "a", DeletedAt: &deleted},
	)
	seed(t, recordsB, models.People,
		models.SyncRecord{ID: "updated-1", UpdatedAt: 1500, DeviceID: "b", Fields: map[string]any{"name": "Irina"}},
		models.SyncRecord{ID: "updated-2", UpdatedAt: 3000, DeviceID: "b", Fields: map[string]any{"name": "Oleg B"}},
		models.SyncRecord{ID: "removed", UpdatedAt: 1200, DeviceID: "b"},
	)

	since := sinceT
	snap, err := deviceA.ExportSnapshot(context.Background(), &since)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalRecords, "only records changed after T travel")

	upserted, err := deviceB.ImportSnapshot(context.Background(), snap, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 2, upserted)

	people := recordsB.all(models.People)
	assert.Equal(t, "Ira", people["updated-1"].Fields["name"], "A's newer copy wins")
	assert.Equal(t, "Oleg B", people["updated-2"].Fields["name"], "B's newer copy survives")
	require.Contains(t, people, "removed", "tombstone is marked deleted, not absent")
	assert.True(t, people["removed"].Deleted())
	assert.NotContains(t, people, "unchanged")
}

// helpers

func snapshotOf(entityType models.EntityType, recs ...models.SyncRecord) models.Snapshot {
	if recs == nil {
		recs = []models.SyncRecord{}
	}
	return models.Snapshot{
		Format:     models.SnapshotFormat,
		Version:    models.SnapshotVersion,
		ExportedAt: 1_700_000_000_000,
		Entities: []models.EntityGroup{
			{Type: entityType, Records: recs, Count: len(recs)},
		},
		TotalRecords: len(recs),
	}
}

func exportedTypes(snap models.Snapshot) []models.EntityType {
	types := make([]models.EntityType, 0, len(snap.Entities))
	for _, group := range snap.Entities {
		types = append(types, group.Type)
	}
	return types
}

func groupFor(t *testing.T, snap models.Snapshot, entityType models.EntityType) models.EntityGroup {
	t.Helper()
	for _, group := range snap.Entities {
		if group.Type == entityType {
			return group
		}
	}
	t.Fatalf("snapshot has no %s group", entityType)
	return models.EntityGroup{}
}
