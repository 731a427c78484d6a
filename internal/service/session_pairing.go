// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/internal/store"
	"github.com/balance-app/balance-sync/internal/utils"
	"github.com/balance-app/balance-sync/models"
)

type pairingSession struct {
	meta   store.MetaRepository
	sync   *syncSession
	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

func NewPairingSession(meta store.MetaRepository, data DataService, log *logger.Logger) PairingSession {
	return &pairingSession{
		meta:   meta,
		sync:   &syncSession{data: data, logger: log},
		uuid:   utils.NewUUIDGenerator(),
		logger: log,
	}
}

// RunInitiator implements PairingSession. The household identifier is
// generated fresh for every attempt; it is only persisted after the peer
// accepts.
func (s *pairingSession) RunInitiator(ctx context.Context, conn Connection) (models.MergeSummary, error) {
	var summary models.MergeSummary

	deviceID, err := s.meta.DeviceID(ctx)
	if err != nil {
		return summary, fmt.Errorf("load device id: %w", err)
	}
	householdID := s.uuid.Generate()

	in := newInbox(conn)

	request, err := json.Marshal(models.NewLinkRequest(deviceID, householdID))
	if err != nil {
		return summary, fmt.Errorf("encode link request: %w", err)
	}
	if err := conn.Send(string(request)); err != nil {
		return summary, fmt.Errorf("send link request: %w", err)
	}

	replyCtx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	raw, err := in.next(replyCtx)
	if err != nil {
		return summary, fmt.Errorf("wait for pairing reply: %w", err)
	}
	msg, err := models.DecodeWireMessage(raw)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrUnexpectedMessage, err)
	}

	switch reply := msg.(type) {
	case *models.LinkAccept:
		if err := s.meta.SetHousehold(ctx, householdID, reply.DeviceID); err != nil {
			return summary, fmt.Errorf("persist pairing: %w", err)
		}
		s.logger.Info().
			Str("func", "pairingSession.RunInitiator").
			Str("household_id", householdID).
			Str("peer_device_id", reply.DeviceID).
			Msg("pairing accepted")
		return s.firstSync(ctx, conn, in)

	case *models.LinkReject:
		return summary, ErrPairingRejected

	default:
		return summary, fmt.Errorf("%w: expected %s or %s, got %T",
			ErrUnexpectedMessage, models.MsgLinkAccept, models.MsgLinkReject, msg)
	}
}

// RunResponder implements PairingSession. The confirm callback carries the
// local user's decision; a nil callback declines every request.
func (s *pairingSession) RunResponder(ctx context.Context, conn Connection, confirm func(models.LinkRequest) bool) (models.MergeSummary, error) {
	var summary models.MergeSummary

	deviceID, err := s.meta.DeviceID(ctx)
	if err != nil {
		return summary, fmt.Errorf("load device id: %w", err)
	}

	in := newInbox(conn)

	raw, err := in.next(ctx)
	if err != nil {
		return summary, fmt.Errorf("wait for link request: %w", err)
	}
	msg, err := models.DecodeWireMessage(raw)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrUnexpectedMessage, err)
	}
	request, ok := msg.(*models.LinkRequest)
	if !ok {
		return summary, fmt.Errorf("%w: expected %s, got %T", ErrUnexpectedMessage, models.MsgLinkRequest, msg)
	}

	if confirm == nil || !confirm(*request) {
		reject, err := json.Marshal(models.NewLinkReject())
		if err != nil {
			return summary, fmt.Errorf("encode link reject: %w", err)
		}
		if err := conn.Send(string(reject)); err != nil {
			return summary, fmt.Errorf("send link reject: %w", err)
		}
		return summary, ErrPairingRejected
	}

	if err := s.meta.SetHousehold(ctx, request.HouseholdID, request.DeviceID); err != nil {
		return summary, fmt.Errorf("persist pairing: %w", err)
	}

	accept, err := json.Marshal(models.NewLinkAccept(deviceID))
	if err != nil {
		return summary, fmt.Errorf("encode link accept: %w", err)
	}
	if err := conn.Send(string(accept)); err != nil {
		return summary, fmt.Errorf("send link accept: %w", err)
	}

	s.logger.Info().
		Str("func", "pairingSession.RunResponder").
		Str("household_id", request.HouseholdID).
		Str("peer_device_id", request.DeviceID).
		Msg("pairing accepted")

	return s.firstSync(ctx, conn, in)
}

// firstSync runs the full incremental sync that follows a successful link,
// sharing the handshake's inbox so no early snapshot frame is lost, and
// moves the sync cursor to the session start.
func (s *pairingSession) firstSync(ctx context.Context, conn Connection, in *inbox) (models.MergeSummary, error) {
	start := utils.NowMillis()

	summary, err := s.sync.run(ctx, conn, in, nil, nil)
	if err != nil {
		return summary, fmt.Errorf("first sync after pairing: %w", err)
	}

	if err := s.meta.SetLastSyncAt(ctx, start); err != nil {
		return summary, fmt.Errorf("move sync cursor: %w", err)
	}
	return summary, nil
}
