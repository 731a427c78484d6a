// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/internal/utils"
)

// device_meta keys. The table is a plain key/value store for the handful of
// device-scoped values that must never travel during sync.
const (
	metaDeviceID     = "device_id"
	metaHouseholdID  = "household_id"
	metaPeerDeviceID = "peer_device_id"
	metaLastSyncAt   = "last_sync_at"
)

type metaRepository struct {
	*DB
	logger *logger.Logger
	uuid   *utils.UUIDGenerator
}

// NewMetaRepository constructs a [MetaRepository] backed by the provided
// database connection and logger.
func NewMetaRepository(db *DB, logger *logger.Logger) MetaRepository {
	return &metaRepository{
		DB:     db,
		logger: logger,
		uuid:   utils.NewUUIDGenerator(),
	}
}

// DeviceID returns the stable identifier of this device, generating and
// persisting a fresh UUID on first call.
func (m *metaRepository) DeviceID(ctx context.Context) (string, error) {
	id, err := m.get(ctx, metaDeviceID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return "", err
	}

	id = m.uuid.Generate()
	if err = m.set(ctx, metaDeviceID, id); err != nil {
		return "", err
	}

	m.logger.Info().
		Str("func", "metaRepository.DeviceID").
		Str("device_id", id).
		Msg("generated new device identifier")
	return id, nil
}

func (m *metaRepository) SetHousehold(ctx context.Context, householdID, peerDeviceID string) error {
	if err := m.set(ctx, metaHouseholdID, householdID); err != nil {
		return err
	}
	return m.set(ctx, metaPeerDeviceID, peerDeviceID)
}

func (m *metaRepository) Household(ctx context.Context) (string, string, error) {
	householdID, err := m.get(ctx, metaHouseholdID)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return "", "", err
	}

	peerDeviceID, err := m.get(ctx, metaPeerDeviceID)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return "", "", err
	}

	return householdID, peerDeviceID, nil
}

func (m *metaRepository) LastSyncAt(ctx context.Context) (*int64, error) {
	raw, err := m.get(ctx, metaLastSyncAt)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil // first sync
	}
	if err != nil {
		return nil, err
	}

	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse last_sync_at: %w", err)
	}
	return &ts, nil
}

func (m *metaRepository) SetLastSyncAt(ctx context.Context, ts int64) error {
	return m.set(ctx, metaLastSyncAt, strconv.FormatInt(ts, 10))
}

func (m *metaRepository) get(ctx context.Context, key string) (string, error) {
	query, args, err := sq.
		Select("value").
		From("device_meta").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = m.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrRecordNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (m *metaRepository) set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Insert("device_meta").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = m.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "metaRepository.set").
			Str("key", key).
			Msg("failed to write device meta value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
