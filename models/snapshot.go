// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// SnapshotFormat is the "format" discriminator of every snapshot document,
// shared with the on-disk backup file format.
const SnapshotFormat = "balance-backup"

// SnapshotVersion is the newest snapshot document version this build can
// import. Imports reject anything newer before touching the store.
const SnapshotVersion = 1

var (
	ErrSnapshotFormat  = errors.New("unrecognized snapshot format")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrSnapshotCounts  = errors.New("snapshot record counts do not add up")
)

// EntityGroup carries all exported records of a single entity type.
type EntityGroup struct {
	Type    EntityType   `json:"type"`
	Records []SyncRecord `json:"records"`
	Count   int          `json:"count"`
}

// Snapshot is the versioned document exchanged during sync sessions and
// persisted by the external backup feature. Produced by export, consumed by
// import.
type Snapshot struct {
	Format       string        `json:"format"`
	Version      int           `json:"version"`
	ExportedAt   int64         `json:"exportedAt"`
	Entities     []EntityGroup `json:"entities"`
	TotalRecords int           `json:"totalRecords"`
}

// Validate checks the document header and internal counts. It must pass
// before any import touches the store, so a rejected snapshot never causes
// a partial write.
func (s Snapshot) Validate() error {
	if s.Format != SnapshotFormat {
		return fmt.Errorf("%w: %q", ErrSnapshotFormat, s.Format)
	}
	if s.Version < 1 || s.Version > SnapshotVersion {
		return fmt.Errorf("%w: %d (this build understands up to %d)", ErrSnapshotVersion, s.Version, SnapshotVersion)
	}

	total := 0
	for _, group := range s.Entities {
		if group.Count != len(group.Records) {
			return fmt.Errorf("%w: %s declares %d, carries %d", ErrSnapshotCounts, group.Type, group.Count, len(group.Records))
		}
		total += group.Count
	}
	if total != s.TotalRecords {
		return fmt.Errorf("%w: header says %d, groups sum to %d", ErrSnapshotCounts, s.TotalRecords, total)
	}

	return nil
}
