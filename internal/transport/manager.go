// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/balance-app/balance-sync/internal/logger"
)

// State is the lifecycle state of one logical connection.
type State string

const (
	StateNew        State = "new"
	StateConnecting State = "connecting"
	StateOpen       State = "open"
	StateClosed     State = "closed"
	StateFailed     State = "failed"
)

const (
	// gatherTimeout bounds local candidate gathering inside
	// CreateOffer/AcceptOffer. Failing to gather is fatal to the attempt.
	gatherTimeout = 10 * time.Second

	// Overall connection timeouts: direct connections on the same network
	// settle fast; traversal-assisted ones get extra headroom.
	connectTimeoutDirect = 30 * time.Second
	connectTimeoutRelay  = 45 * time.Second

	// highWaterMark is the outbound buffer level above which
	// SendWithProgress pauses before the next write.
	highWaterMark = 64 * 1024

	// drainPollInterval is the bounded-poll fallback used while waiting
	// for the buffer to drain, in case the low-buffer notification is
	// unavailable. The notification is the primary mechanism.
	drainPollInterval = 200 * time.Millisecond
)

// Config is the connection surface consumed from preferences. An empty
// ICEServers list means same-network mode: the transport logic is identical,
// only the candidate set differs.
type Config struct {
	// ICEServers lists traversal-assistance server URLs (stun:/turn:).
	ICEServers []string

	// RelayUsername and RelayCredential authenticate against relay
	// servers, when the URLs include any.
	RelayUsername   string
	RelayCredential string

	// ConnectTimeout overrides the overall connection timeout when
	// positive.
	ConnectTimeout time.Duration
}

func (c Config) connectTimeout() time.Duration {
	if c.ConnectTimeout > 0 {
		return c.ConnectTimeout
	}
	if len(c.ICEServers) > 0 {
		return connectTimeoutRelay
	}
	return connectTimeoutDirect
}

// Manager owns exactly one logical connection: it negotiates the direct
// channel via descriptor exchange, applies the timeouts, and provides a
// reliable, backpressure-aware framed send/receive interface on top of the
// size-limited channel.
//
// A Manager is single-use. A dropped or failed connection is terminal;
// retrying means creating a new Manager from scratch.
type Manager struct {
	log *logger.Logger
	neg negotiator
	cfg Config

	mu        sync.Mutex
	state     State
	channel   DataChannel
	asm       assembler
	msgSubs   []func(payload string)
	chunkSubs []func(received, total int)
	failure   error
	timer     *time.Timer

	opened  chan struct{}
	failed  chan struct{}
	done    chan struct{}
	drained chan struct{}

	failOnce sync.Once
	doneOnce sync.Once
}

// NewManager builds a Manager riding on a fresh underlying peer connection.
func NewManager(cfg Config, log *logger.Logger) (*Manager, error) {
	neg, err := newWebRTCNegotiator(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}
	return newManager(cfg, neg, log), nil
}

// newManager wires a Manager onto any negotiator; tests inject fakes here.
func newManager(cfg Config, neg negotiator, log *logger.Logger) *Manager {
	m := &Manager{
		log:     log,
		neg:     neg,
		cfg:     cfg,
		state:   StateNew,
		opened:  make(chan struct{}),
		failed:  make(chan struct{}),
		done:    make(chan struct{}),
		drained: make(chan struct{}, 1),
	}
	go m.watchChannels()
	return m
}

// watchChannels attaches the sync channel as soon as the negotiator
// produces it: immediately on the offering side, at peer-channel arrival on
// the answering side.
func (m *Manager) watchChannels() {
	select {
	case ch := <-m.neg.Channels():
		m.attach(ch)
	case <-m.done:
	}
}

func (m *Manager) attach(ch DataChannel) {
	m.mu.Lock()
	m.channel = ch
	m.mu.Unlock()

	ch.SetBufferedAmountLowThreshold(highWaterMark)
	ch.OnBufferedAmountLow(func() {
		select {
		case m.drained <- struct{}{}:
		default:
		}
	})
	ch.OnOpen(m.handleOpen)
	ch.OnClose(m.handleChannelClose)
	ch.OnError(m.handleChannelError)
	ch.OnMessage(m.handleRaw)

	m.log.Debug().
		Str("func", "Manager.attach").
		Str("label", ch.Label()).
		Msg("sync channel attached")
}

// CreateOffer allocates the connection, opens the "sync" channel, and
// returns the local offer descriptor once candidate gathering completes.
// Transitions the Manager to connecting and starts the overall connection
// timeout.
func (m *Manager) CreateOffer(ctx context.Context) (string, error) {
	if err := m.beginConnecting(); err != nil {
		return "", err
	}

	gatherCtx, cancel := context.WithTimeout(ctx, gatherTimeout)
	defer cancel()

	offer, err := m.neg.CreateOffer(gatherCtx)
	if err != nil {
		err = gatherError(err)
		m.failSetup(err)
		return "", err
	}

	m.startConnectTimer()
	return offer, nil
}

// AcceptOffer consumes the peer's offer and returns the local answer
// descriptor, with the same timeout and state semantics as CreateOffer.
func (m *Manager) AcceptOffer(ctx context.Context, offer string) (string, error) {
	if err := m.beginConnecting(); err != nil {
		return "", err
	}

	gatherCtx, cancel := context.WithTimeout(ctx, gatherTimeout)
	defer cancel()

	answer, err := m.neg.AcceptOffer(gatherCtx, offer)
	if err != nil {
		err = gatherError(err)
		m.failSetup(err)
		return "", err
	}

	m.startConnectTimer()
	return answer, nil
}

// CompleteConnection consumes the peer's answer descriptor and waits for
// the channel to reach open. It returns nil when open, or the typed failure
// when the timeout elapses, the channel errors, or the Manager is closed.
// An already-open connection is success, not a state violation: the channel
// may open between applying the answer and the caller observing the result.
func (m *Manager) CompleteConnection(ctx context.Context, answer string) error {
	m.mu.Lock()
	switch m.state {
	case StateConnecting:
	case StateOpen:
		m.mu.Unlock()
		return nil
	default:
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidState, state)
	}
	m.mu.Unlock()

	if err := m.neg.ApplyAnswer(answer); err != nil {
		m.failSetup(err)
		return err
	}

	return m.WaitOpen(ctx)
}

// WaitOpen blocks until the channel opens or the connection reaches a
// terminal state. The answering side calls this after AcceptOffer; the
// offering side goes through CompleteConnection.
func (m *Manager) WaitOpen(ctx context.Context) error {
	select {
	case <-m.opened:
		return nil
	case <-m.failed:
		return m.failureOr(ErrChannelFailed)
	case <-m.done:
		return m.failureOr(ErrClosed)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send frames the payload and writes every frame immediately. It never
// suspends; if the channel is not open it fails with ErrNotOpen. Meant for
// small one-shot control messages.
func (m *Manager) Send(payload string) error {
	ch, err := m.openChannel()
	if err != nil {
		return err
	}

	for i, frame := range Frame(payload) {
		if err := ch.SendText(frame); err != nil {
			return fmt.Errorf("send frame %d: %w", i+1, err)
		}
	}
	return nil
}

// SendWithProgress frames the payload and writes frames one at a time,
// pausing before each write while the channel's outstanding buffered bytes
// exceed the high-water mark. onProgress is invoked after each write. Meant
// for large payloads such as full snapshots.
func (m *Manager) SendWithProgress(ctx context.Context, payload string, onProgress func(sent, total int)) error {
	ch, err := m.openChannel()
	if err != nil {
		return err
	}

	frames := Frame(payload)
	for i, frame := range frames {
		if err := m.waitBelowHighWater(ctx, ch); err != nil {
			return err
		}
		if err := ch.SendText(frame); err != nil {
			return fmt.Errorf("send frame %d/%d: %w", i+1, len(frames), err)
		}
		if onProgress != nil {
			onProgress(i+1, len(frames))
		}
	}

	return nil
}

// OnMessage registers an observer invoked exactly once per fully
// reassembled logical message. All registered observers fire, in
// registration order.
func (m *Manager) OnMessage(fn func(payload string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgSubs = append(m.msgSubs, fn)
}

// OnChunkProgress registers an observer invoked once per received frame of
// a multi-frame message.
func (m *Manager) OnChunkProgress(fn func(received, total int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunkSubs = append(m.chunkSubs, fn)
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close releases the channel and connection, cancels the pending timeout,
// discards any partially received frames, and forces the state to closed
// even from failed. Idempotent and safe from any state, including while
// other operations are suspended: their waits observe the closure and
// return instead of hanging.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	prev := m.state
	m.state = StateClosed
	ch := m.channel
	m.asm.reset()
	m.mu.Unlock()

	m.doneOnce.Do(func() { close(m.done) })
	if ch != nil {
		_ = ch.Close()
	}
	_ = m.neg.Close()

	if prev != StateClosed {
		m.log.Debug().
			Str("func", "Manager.Close").
			Str("previous_state", string(prev)).
			Msg("connection closed")
	}
}

func (m *Manager) beginConnecting() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateNew {
		return fmt.Errorf("%w: %s", ErrInvalidState, m.state)
	}
	m.state = StateConnecting
	return nil
}

// startConnectTimer schedules the overall connection timeout racing against
// the channel-open event; whichever fires first wins and the loser's effect
// is suppressed.
func (m *Manager) startConnectTimer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConnecting {
		return
	}
	m.timer = time.AfterFunc(m.cfg.connectTimeout(), m.onConnectTimeout)
}

func (m *Manager) onConnectTimeout() {
	m.mu.Lock()
	if m.state != StateConnecting {
		m.mu.Unlock()
		return
	}
	m.state = StateFailed
	m.failure = ErrConnectTimeout
	m.mu.Unlock()

	m.failOnce.Do(func() { close(m.failed) })
	m.log.Warn().
		Str("func", "Manager.onConnectTimeout").
		Dur("timeout", m.cfg.connectTimeout()).
		Msg("connection timed out before the channel opened")

	// timeout auto-transitions failed -> closed, releasing resources
	m.Close()
}

// failSetup records a fatal setup error (gathering timeout, malformed
// descriptor). The Manager stays failed until Close.
func (m *Manager) failSetup(err error) {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.state != StateClosed {
		m.state = StateFailed
	}
	if m.failure == nil {
		m.failure = err
	}
	m.mu.Unlock()

	m.failOnce.Do(func() { close(m.failed) })
}

func (m *Manager) handleOpen() {
	m.mu.Lock()
	if m.state != StateConnecting {
		// late open after the timer already forced failed: ignored
		m.mu.Unlock()
		return
	}
	m.state = StateOpen
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	close(m.opened)
	m.log.Info().Str("func", "Manager.handleOpen").Msg("sync channel open")
}

func (m *Manager) handleChannelClose() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateClosed
	if m.failure == nil {
		m.failure = ErrClosed
	}
	m.asm.reset()
	m.mu.Unlock()

	m.doneOnce.Do(func() { close(m.done) })
	m.log.Info().Str("func", "Manager.handleChannelClose").Msg("peer closed the channel")
}

func (m *Manager) handleChannelError(err error) {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateFailed
	if m.failure == nil {
		m.failure = fmt.Errorf("%w: %w", ErrChannelFailed, err)
	}
	m.mu.Unlock()

	m.failOnce.Do(func() { close(m.failed) })
	m.log.Error().Err(err).Str("func", "Manager.handleChannelError").Msg("channel error")
}

// handleRaw is the single receive path: frames are buffered until their
// message completes; untagged messages are delivered verbatim as an
// already-complete one-frame message.
func (m *Manager) handleRaw(raw string) {
	part := ParseFrame(raw)
	if part == nil {
		m.deliver(raw)
		return
	}

	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	payload, complete := m.asm.add(*part)
	received := m.asm.received()
	if complete {
		received = part.Total
	}
	chunkSubs := make([]func(int, int), len(m.chunkSubs))
	copy(chunkSubs, m.chunkSubs)
	m.mu.Unlock()

	for _, fn := range chunkSubs {
		fn(received, part.Total)
	}
	if complete {
		m.deliver(payload)
	}
}

func (m *Manager) deliver(payload string) {
	m.mu.Lock()
	subs := make([]func(string), len(m.msgSubs))
	copy(subs, m.msgSubs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(payload)
	}
}

func (m *Manager) openChannel() (DataChannel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateOpen || m.channel == nil {
		return nil, ErrNotOpen
	}
	return m.channel, nil
}

// waitBelowHighWater suspends until the outbound buffer drains to the
// high-water mark, the low-buffer notification being the primary wakeup and
// the bounded poll the documented fallback.
func (m *Manager) waitBelowHighWater(ctx context.Context, ch DataChannel) error {
	for {
		m.mu.Lock()
		state := m.state
		m.mu.Unlock()
		if state != StateOpen {
			return m.failureOr(ErrNotOpen)
		}
		if ch.BufferedAmount() <= highWaterMark {
			return nil
		}

		poll := time.NewTimer(drainPollInterval)
		select {
		case <-m.drained:
			poll.Stop()
		case <-poll.C:
		case <-m.failed:
			poll.Stop()
			return m.failureOr(ErrChannelFailed)
		case <-m.done:
			poll.Stop()
			return m.failureOr(ErrClosed)
		case <-ctx.Done():
			poll.Stop()
			return ctx.Err()
		}
	}
}

func (m *Manager) failureOr(fallback error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return m.failure
	}
	return fallback
}

// gatherError maps a gathering deadline into the typed setup error.
func gatherError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrGatherTimeout, err)
	}
	return err
}
