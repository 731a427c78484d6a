// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/models"
)

type transferSession struct {
	data   DataService
	logger *logger.Logger
}

func NewTransferSession(data DataService, log *logger.Logger) TransferSession {
	return &transferSession{data: data, logger: log}
}

// RunSender implements TransferSession. The backup is transmitted exactly
// once; the acknowledgement wait is bounded so an unresponsive peer cannot
// hang the session forever.
func (s *transferSession) RunSender(ctx context.Context, conn Connection, progress func(models.SyncProgress)) (int, error) {
	in := newInbox(conn)

	snap, err := s.data.ExportFullBackup(ctx)
	if err != nil {
		return 0, fmt.Errorf("export full backup: %w", err)
	}
	payload, err := json.Marshal(models.NewTransferBackup(snap))
	if err != nil {
		return 0, fmt.Errorf("encode backup: %w", err)
	}

	err = conn.SendWithProgress(ctx, string(payload), func(sent, total int) {
		if progress != nil {
			progress(models.SyncProgress{Direction: "send", FramesDone: sent, FramesTotal: total})
		}
	})
	if err != nil {
		return 0, fmt.Errorf("send backup: %w", err)
	}

	ackCtx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	raw, err := in.next(ackCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return 0, ErrAckTimeout
		}
		return 0, fmt.Errorf("wait for acknowledgement: %w", err)
	}

	msg, err := models.DecodeWireMessage(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnexpectedMessage, err)
	}
	ack, ok := msg.(*models.TransferComplete)
	if !ok {
		return 0, fmt.Errorf("%w: expected %s, got %T", ErrUnexpectedMessage, models.MsgTransferComplete, msg)
	}

	s.logger.Info().
		Str("func", "transferSession.RunSender").
		Int("exported", snap.TotalRecords).
		Int("imported_by_peer", ack.ImportedRecords).
		Msg("full transfer acknowledged")

	return ack.ImportedRecords, nil
}

// RunReceiver implements TransferSession. Exactly one backup message is
// consumed; the import mode was chosen by the user before the session began.
func (s *transferSession) RunReceiver(ctx context.Context, conn Connection, mode ImportMode, progress func(models.SyncProgress)) (int, error) {
	in := newInbox(conn)
	if progress != nil {
		conn.OnChunkProgress(func(received, total int) {
			progress(models.SyncProgress{Direction: "receive", FramesDone: received, FramesTotal: total})
		})
	}

	raw, err := in.next(ctx)
	if err != nil {
		return 0, fmt.Errorf("wait for backup: %w", err)
	}

	msg, err := models.DecodeWireMessage(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnexpectedMessage, err)
	}
	backup, ok := msg.(*models.TransferBackup)
	if !ok {
		return 0, fmt.Errorf("%w: expected %s, got %T", ErrUnexpectedMessage, models.MsgTransferBackup, msg)
	}

	imported, err := s.data.ImportSnapshot(ctx, backup.Snapshot, mode)
	if err != nil {
		return 0, fmt.Errorf("import backup: %w", err)
	}

	ack, err := json.Marshal(models.NewTransferComplete(imported))
	if err != nil {
		return imported, fmt.Errorf("encode acknowledgement: %w", err)
	}
	if err := conn.Send(string(ack)); err != nil {
		return imported, fmt.Errorf("send acknowledgement: %w", err)
	}

	s.logger.Info().
		Str("func", "transferSession.RunReceiver").
		Str("mode", string(mode)).
		Int("imported", imported).
		Msg("full transfer imported")

	return imported, nil
}
