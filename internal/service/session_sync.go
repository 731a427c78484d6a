// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/models"
)

type syncSession struct {
	data   DataService
	logger *logger.Logger
}

func NewSyncSession(data DataService, log *logger.Logger) SyncSession {
	return &syncSession{data: data, logger: log}
}

// Run implements SyncSession. Both halves of the exchange proceed
// concurrently: the peer's snapshot is merged as soon as it fully arrives,
// independent of whether our own send has finished.
func (s *syncSession) Run(ctx context.Context, conn Connection, since *int64, progress func(models.SyncProgress)) (models.MergeSummary, error) {
	return s.run(ctx, conn, newInbox(conn), since, progress)
}

// run is the inbox-sharing entry used by the pairing session, whose inbox
// is already attached to the connection.
func (s *syncSession) run(ctx context.Context, conn Connection, in *inbox, since *int64, progress func(models.SyncProgress)) (models.MergeSummary, error) {
	var summary models.MergeSummary

	if progress != nil {
		conn.OnChunkProgress(func(received, total int) {
			progress(models.SyncProgress{Direction: "receive", FramesDone: received, FramesTotal: total})
		})
	}

	snap, err := s.data.ExportSnapshot(ctx, since)
	if err != nil {
		return summary, fmt.Errorf("export snapshot: %w", err)
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return summary, fmt.Errorf("encode snapshot: %w", err)
	}
	summary.TotalSent = snap.TotalRecords

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := conn.SendWithProgress(gctx, string(payload), func(sent, total int) {
			if progress != nil {
				progress(models.SyncProgress{Direction: "send", FramesDone: sent, FramesTotal: total})
			}
		})
		if err != nil {
			return fmt.Errorf("send snapshot: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		raw, err := in.next(gctx)
		if err != nil {
			return fmt.Errorf("wait for peer snapshot: %w", err)
		}

		msg, err := models.DecodeWireMessage(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnexpectedMessage, err)
		}
		peerSnap, ok := msg.(*models.Snapshot)
		if !ok {
			return fmt.Errorf("%w: expected a snapshot, got %T", ErrUnexpectedMessage, msg)
		}

		upserted, err := s.data.ImportSnapshot(gctx, *peerSnap, ImportMerge)
		if err != nil {
			return fmt.Errorf("merge peer snapshot: %w", err)
		}

		summary.TotalReceived = peerSnap.TotalRecords
		summary.TotalUpserted = upserted
		return nil
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}

	s.logger.Info().
		Str("func", "syncSession.Run").
		Int("sent", summary.TotalSent).
		Int("received", summary.TotalReceived).
		Int("upserted", summary.TotalUpserted).
		Msg("incremental sync completed")

	return summary, nil
}
