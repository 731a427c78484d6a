// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/internal/store"
	"github.com/balance-app/balance-sync/internal/utils"
	"github.com/balance-app/balance-sync/models"
)

type dataService struct {
	records  store.RecordRepository
	resolver MergeResolver
	logger   *logger.Logger
}

func NewDataService(records store.RecordRepository, log *logger.Logger) DataService {
	return &dataService{
		records:  records,
		resolver: NewMergeResolver(),
		logger:   log,
	}
}

// ExportSnapshot implements DataService. Device-local entity types never
// appear in the result regardless of the since filter.
func (s *dataService) ExportSnapshot(ctx context.Context, since *int64) (models.Snapshot, error) {
	return s.export(ctx, models.SyncableTypes(), since)
}

// ExportFullBackup implements DataService: every entity type, no filter.
func (s *dataService) ExportFullBackup(ctx context.Context) (models.Snapshot, error) {
	return s.export(ctx, models.AllTypes(), nil)
}

func (s *dataService) export(ctx context.Context, types []models.EntityType, since *int64) (models.Snapshot, error) {
	snap := models.Snapshot{
		Format:     models.SnapshotFormat,
		Version:    models.SnapshotVersion,
		ExportedAt: utils.NowMillis(),
		Entities:   make([]models.EntityGroup, 0, len(types)),
	}

	for _, entityType := range types {
		records, err := s.records.List(ctx, entityType, since)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("list %s records: %w", entityType, err)
		}
		snap.Entities = append(snap.Entities, models.EntityGroup{
			Type:    entityType,
			Records: records,
			Count:   len(records),
		})
		snap.TotalRecords += len(records)
	}

	return snap, nil
}

// ImportSnapshot implements DataService. The snapshot is validated before
// any store mutation; a rejected snapshot never causes a partial write.
func (s *dataService) ImportSnapshot(ctx context.Context, snap models.Snapshot, mode ImportMode) (int, error) {
	if err := snap.Validate(); err != nil {
		return 0, fmt.Errorf("validate snapshot: %w", err)
	}

	switch mode {
	case ImportReplace:
		return s.importReplace(ctx, snap)
	case ImportMerge:
		return s.importMerge(ctx, snap)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownImportMode, mode)
	}
}

func (s *dataService) importReplace(ctx context.Context, snap models.Snapshot) (int, error) {
	groups := make([]models.EntityGroup, 0, len(snap.Entities))
	imported := 0
	for _, group := range snap.Entities {
		if !group.Type.Known() {
			s.logger.Warn().
				Str("func", "dataService.importReplace").
				Str("entity_type", string(group.Type)).
				Msg("skipping unknown entity type")
			continue
		}
		groups = append(groups, group)
		imported += len(group.Records)
	}

	if err := s.records.ReplaceEntities(ctx, groups); err != nil {
		return 0, fmt.Errorf("replace entities: %w", err)
	}

	return imported, nil
}

func (s *dataService) importMerge(ctx context.Context, snap models.Snapshot) (int, error) {
	applied := 0
	for _, group := range snap.Entities {
		if !group.Type.Known() {
			s.logger.Warn().
				Str("func", "dataService.importMerge").
				Str("entity_type", string(group.Type)).
				Msg("skipping unknown entity type")
			continue
		}

		for _, remote := range group.Records {
			if remote.ID == "" {
				s.logger.Warn().
					Str("func", "dataService.importMerge").
					Str("entity_type", string(group.Type)).
					Msg("skipping record without id")
				continue
			}

			won, err := s.mergeOne(ctx, group.Type, remote)
			if err != nil {
				return applied, err
			}
			if won {
				applied++
			}
		}
	}

	return applied, nil
}

func (s *dataService) mergeOne(ctx context.Context, entityType models.EntityType, remote models.SyncRecord) (bool, error) {
	var local *models.SyncRecord
	existing, err := s.records.Get(ctx, entityType, remote.ID)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
	case err != nil:
		return false, fmt.Errorf("get local %s %s: %w", entityType, remote.ID, err)
	default:
		local = &existing
	}

	winner, remoteWon := s.resolver.Resolve(local, remote)
	if !remoteWon {
		return false, nil
	}

	if err := s.records.Upsert(ctx, entityType, winner); err != nil {
		return false, fmt.Errorf("upsert %s %s: %w", entityType, winner.ID, err)
	}
	return true, nil
}
