// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/balance-app/balance-sync/internal/logger"
)

// syncChannelLabel names the single logical channel opened per connection.
const syncChannelLabel = "sync"

// webrtcNegotiator adapts a pion peer connection to the negotiator
// interface. Same-network and cross-network connections share this code
// path entirely; an empty ICE server list just limits the candidate set to
// local ones.
type webrtcNegotiator struct {
	pc       *webrtc.PeerConnection
	channels chan DataChannel
	log      *logger.Logger
}

func newWebRTCNegotiator(cfg Config, log *logger.Logger) (*webrtcNegotiator, error) {
	conf := webrtc.Configuration{}
	if len(cfg.ICEServers) > 0 {
		server := webrtc.ICEServer{URLs: cfg.ICEServers}
		if cfg.RelayUsername != "" {
			server.Username = cfg.RelayUsername
			server.Credential = cfg.RelayCredential
		}
		conf.ICEServers = []webrtc.ICEServer{server}
	}

	pc, err := webrtc.NewPeerConnection(conf)
	if err != nil {
		return nil, err
	}

	n := &webrtcNegotiator{
		pc:       pc,
		channels: make(chan DataChannel, 1),
		log:      log,
	}

	// Answering side: capture the channel the offering side opened.
	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != syncChannelLabel {
			log.Warn().
				Str("func", "webrtcNegotiator.OnDataChannel").
				Str("label", dc.Label()).
				Msg("ignoring unexpected data channel")
			return
		}
		select {
		case n.channels <- &webrtcChannel{dc: dc}:
		default:
		}
	})

	return n, nil
}

func (n *webrtcNegotiator) CreateOffer(ctx context.Context) (string, error) {
	dc, err := n.pc.CreateDataChannel(syncChannelLabel, nil)
	if err != nil {
		return "", fmt.Errorf("open sync channel: %w", err)
	}
	n.channels <- &webrtcChannel{dc: dc}

	offer, err := n.pc.CreateOffer(nil)
	if err != nil {
		return "", fmt.Errorf("create offer: %w", err)
	}

	return n.gatherAndEncode(ctx, offer)
}

func (n *webrtcNegotiator) AcceptOffer(ctx context.Context, offer string) (string, error) {
	remote, err := decodeSessionDescription(offer)
	if err != nil {
		return "", err
	}
	if err = n.pc.SetRemoteDescription(remote); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}

	answer, err := n.pc.CreateAnswer(nil)
	if err != nil {
		return "", fmt.Errorf("create answer: %w", err)
	}

	return n.gatherAndEncode(ctx, answer)
}

func (n *webrtcNegotiator) ApplyAnswer(answer string) error {
	remote, err := decodeSessionDescription(answer)
	if err != nil {
		return err
	}
	if err = n.pc.SetRemoteDescription(remote); err != nil {
		return fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}
	return nil
}

func (n *webrtcNegotiator) Channels() <-chan DataChannel {
	return n.channels
}

func (n *webrtcNegotiator) Close() error {
	return n.pc.Close()
}

// gatherAndEncode sets the local description, waits for candidate gathering
// to finish (bounded by ctx), and returns the complete local descriptor.
// Waiting for full gathering keeps candidates inside the descriptor, so no
// trickle signaling path is needed: one artifact per direction.
func (n *webrtcNegotiator) gatherAndEncode(ctx context.Context, desc webrtc.SessionDescription) (string, error) {
	gathered := webrtc.GatheringCompletePromise(n.pc)
	if err := n.pc.SetLocalDescription(desc); err != nil {
		return "", fmt.Errorf("set local description: %w", err)
	}

	select {
	case <-gathered:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	local := n.pc.LocalDescription()
	raw, err := json.Marshal(local)
	if err != nil {
		return "", fmt.Errorf("encode session description: %w", err)
	}

	n.log.Debug().
		Str("func", "webrtcNegotiator.gatherAndEncode").
		Str("type", local.Type.String()).
		Int("sdp_bytes", len(local.SDP)).
		Msg("candidate gathering complete")

	return EncodeDescriptor(raw)
}

func decodeSessionDescription(descriptor string) (webrtc.SessionDescription, error) {
	raw, err := DecodeDescriptor(descriptor)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}

	var desc webrtc.SessionDescription
	if err = json.Unmarshal(raw, &desc); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}
	if desc.SDP == "" {
		return webrtc.SessionDescription{}, fmt.Errorf("%w: empty session description", ErrBadDescriptor)
	}

	return desc, nil
}

// webrtcChannel adapts *webrtc.DataChannel to the DataChannel interface.
type webrtcChannel struct {
	dc *webrtc.DataChannel
}

func (c *webrtcChannel) Label() string { return c.dc.Label() }

func (c *webrtcChannel) SendText(payload string) error {
	return c.dc.SendText(payload)
}

func (c *webrtcChannel) BufferedAmount() uint64 {
	return c.dc.BufferedAmount()
}

func (c *webrtcChannel) SetBufferedAmountLowThreshold(threshold uint64) {
	c.dc.SetBufferedAmountLowThreshold(threshold)
}

func (c *webrtcChannel) OnBufferedAmountLow(fn func()) {
	c.dc.OnBufferedAmountLow(fn)
}

func (c *webrtcChannel) OnMessage(fn func(payload string)) {
	c.dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		fn(string(msg.Data))
	})
}

// OnOpen fires fn immediately when the channel is already open, covering
// the race between channel arrival and handler registration on the
// answering side.
func (c *webrtcChannel) OnOpen(fn func()) {
	if c.dc.ReadyState() == webrtc.DataChannelStateOpen {
		go fn()
		return
	}
	c.dc.OnOpen(fn)
}

func (c *webrtcChannel) OnClose(fn func()) {
	c.dc.OnClose(fn)
}

func (c *webrtcChannel) OnError(fn func(err error)) {
	c.dc.OnError(fn)
}

func (c *webrtcChannel) Close() error {
	return c.dc.Close()
}
