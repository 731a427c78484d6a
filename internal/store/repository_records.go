// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/models"
)

// recordRepository is the SQLite-backed implementation of
// [RecordRepository]. All entity types share the single "records" table,
// keyed by (entity_type, id); business fields travel as a JSON blob so the
// sync core stays independent of entity schemas.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordRepository) Get(ctx context.Context, entityType models.EntityType, id string) (models.SyncRecord, error) {
	log := logger.FromContext(ctx)

	if !entityType.Known() {
		return models.SyncRecord{}, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}

	query, args, err := sq.
		Select("id", "updated_at", "device_id", "deleted_at", "fields").
		From("records").
		Where(sq.Eq{"entity_type": string(entityType), "id": id}).
		ToSql()
	if err != nil {
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Str("entity_type", string(entityType)).
			Str("id", id).
			Msg("failed to read record")
		return models.SyncRecord{}, err
	}

	return rec, nil
}

func (r *recordRepository) Upsert(ctx context.Context, entityType models.EntityType, record models.SyncRecord) error {
	log := logger.FromContext(ctx)

	if !entityType.Known() {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}

	fields, err := json.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("encode record fields: %w", err)
	}

	query, args, err := sq.
		Insert("records").
		Columns("entity_type", "id", "updated_at", "device_id", "deleted_at", "fields").
		Values(string(entityType), record.ID, record.UpdatedAt, record.DeviceID, deletedAtValue(record), string(fields)).
		Suffix(`ON CONFLICT (entity_type, id) DO UPDATE SET
			updated_at = excluded.updated_at,
			device_id  = excluded.device_id,
			deleted_at = excluded.deleted_at,
			fields     = excluded.fields`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Upsert").
			Str("entity_type", string(entityType)).
			Str("id", record.ID).
			Msg("failed to upsert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository) List(ctx context.Context, entityType models.EntityType, since *int64) ([]models.SyncRecord, error) {
	log := logger.FromContext(ctx)

	if !entityType.Known() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}

	builder := sq.
		Select("id", "updated_at", "device_id", "deleted_at", "fields").
		From("records").
		Where(sq.Eq{"entity_type": string(entityType)}).
		OrderBy("updated_at ASC", "id ASC")
	if since != nil {
		builder = builder.Where(sq.Gt{"updated_at": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.List").
			Str("entity_type", string(entityType)).
			Msg("failed to execute record list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.SyncRecord, 0, 50)
	for rows.Next() {
		rec, scanErr := scanRecord(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.List").
				Str("entity_type", string(entityType)).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.List").
			Str("entity_type", string(entityType)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// ReplaceEntities runs the whole clear-and-load as one transaction so a
// reader never observes a half-cleared table.
func (r *recordRepository) ReplaceEntities(ctx context.Context, groups []models.EntityGroup) error {
	log := logger.FromContext(ctx)

	types := make([]string, 0, len(groups))
	for _, group := range groups {
		if !group.Type.Known() {
			return fmt.Errorf("%w: %s", ErrUnknownEntityType, group.Type)
		}
		types = append(types, string(group.Type))
	}
	if len(types) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := sq.
		Delete("records").
		Where(sq.Eq{"entity_type": types}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.ReplaceEntities").
			Msg("failed to clear entity tables")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, group := range groups {
		for _, record := range group.Records {
			fields, encErr := json.Marshal(record.Fields)
			if encErr != nil {
				return fmt.Errorf("encode record fields: %w", encErr)
			}

			insertQuery, insertArgs, buildErr := sq.
				Insert("records").
				Columns("entity_type", "id", "updated_at", "device_id", "deleted_at", "fields").
				Values(string(group.Type), record.ID, record.UpdatedAt, record.DeviceID, deletedAtValue(record), string(fields)).
				ToSql()
			if buildErr != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
			}

			if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				log.Err(err).
					Str("func", "recordRepository.ReplaceEntities").
					Str("entity_type", string(group.Type)).
					Str("id", record.ID).
					Msg("failed to load record")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// scanRecord reads one records row through the given scan function, shared
// between QueryRow and rows iteration.
func scanRecord(scan func(dest ...any) error) (models.SyncRecord, error) {
	var (
		rec       models.SyncRecord
		deletedAt sql.NullInt64
		fields    string
	)

	if err := scan(&rec.ID, &rec.UpdatedAt, &rec.DeviceID, &deletedAt, &fields); err != nil {
		return models.SyncRecord{}, err
	}

	if deletedAt.Valid {
		ts := deletedAt.Int64
		rec.DeletedAt = &ts
	}
	if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
		return models.SyncRecord{}, fmt.Errorf("decode record fields: %w", err)
	}

	return rec, nil
}

func deletedAtValue(record models.SyncRecord) any {
	if record.DeletedAt == nil {
		return nil
	}
	return *record.DeletedAt
}
