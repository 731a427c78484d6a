// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityType names one logical table of the local database.
type EntityType string

const (
	// People are the contacts the user maintains relationships with.
	People EntityType = "people"

	// Interactions are logged touchpoints with a person.
	Interactions EntityType = "interactions"

	// Schedules are planned future touchpoints.
	Schedules EntityType = "schedules"

	// Tasks are one-off to-dos attached to a person or standalone.
	Tasks EntityType = "tasks"

	// Goals are longer-running relationship goals.
	Goals EntityType = "goals"

	// RecurringLogs are completion logs of recurring events.
	RecurringLogs EntityType = "recurring_logs"

	// IdeaLists are free-form idea collections.
	IdeaLists EntityType = "idea_lists"

	// SavedLocations are user-saved places.
	SavedLocations EntityType = "saved_locations"

	// Settings are personal preferences. Device-local.
	Settings EntityType = "settings"

	// SnoozeState is suggestion snooze/dismissal state. Device-local.
	SnoozeState EntityType = "snooze_state"
)

// syncableTypes lists the entity types that travel during incremental sync,
// in the order they appear in exported snapshots. Device-local types never
// leave the device during incremental sync; a full backup carries everything
// because its purpose is whole-device migration.
var syncableTypes = []EntityType{
	People,
	Interactions,
	Schedules,
	Tasks,
	Goals,
	RecurringLogs,
	IdeaLists,
	SavedLocations,
}

var deviceLocalTypes = []EntityType{
	Settings,
	SnoozeState,
}

// Syncable reports whether records of this type travel in incremental sync
// payloads.
func (t EntityType) Syncable() bool {
	for _, s := range syncableTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Known reports whether t is one of the entity types this core manages.
func (t EntityType) Known() bool {
	return t.Syncable() || t == Settings || t == SnoozeState
}

// SyncableTypes returns the entity types included in incremental sync
// exports. The returned slice is a copy.
func SyncableTypes() []EntityType {
	out := make([]EntityType, len(syncableTypes))
	copy(out, syncableTypes)
	return out
}

// AllTypes returns every entity type, syncable first, then device-local.
// Used by full backups, which ignore the sync policy.
func AllTypes() []EntityType {
	out := make([]EntityType, 0, len(syncableTypes)+len(deviceLocalTypes))
	out = append(out, syncableTypes...)
	out = append(out, deviceLocalTypes...)
	return out
}
