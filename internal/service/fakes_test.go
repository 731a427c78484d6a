package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/balance-app/balance-sync/internal/store"
	"github.com/balance-app/balance-sync/models"
)

// memRecords is an in-memory RecordRepository used across the service tests.
type memRecords struct {
	mu   sync.Mutex
	data map[models.EntityType]map[string]models.SyncRecord
}

func newMemRecords() *memRecords {
	return &memRecords{data: make(map[models.EntityType]map[string]models.SyncRecord)}
}

func (m *memRecords) Get(_ context.Context, entityType models.EntityType, id string) (models.SyncRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.data[entityType][id]
	if !ok {
		return models.SyncRecord{}, store.ErrRecordNotFound
	}
	return rec, nil
}

func (m *memRecords) Upsert(_ context.Context, entityType models.EntityType, record models.SyncRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[entityType] == nil {
		m.data[entityType] = make(map[string]models.SyncRecord)
	}
	m.data[entityType][record.ID] = record
	return nil
}

func (m *memRecords) List(_ context.Context, entityType models.EntityType, since *int64) ([]models.SyncRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SyncRecord
	for _, rec := range m.data[entityType] {
		if since != nil && rec.UpdatedAt <= *since {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRecords) ReplaceEntities(_ context.Context, groups []models.EntityGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, group := range groups {
		m.data[group.Type] = make(map[string]models.SyncRecord)
		for _, rec := range group.Records {
			m.data[group.Type][rec.ID] = rec
		}
	}
	return nil
}

func (m *memRecords) all(entityType models.EntityType) map[string]models.SyncRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.SyncRecord, len(m.data[entityType]))
	for id, rec := range m.data[entityType] {
		out[id] = rec
	}
	return out
}

// memMeta is an in-memory MetaRepository.
type memMeta struct {
	mu           sync.Mutex
	deviceID     string
	householdID  string
	peerDeviceID string
	lastSyncAt   *int64
}

func (m *memMeta) DeviceID(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceID, nil
}

func (m *memMeta) SetHousehold(_ context.Context, householdID, peerDeviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.householdID = householdID
	m.peerDeviceID = peerDeviceID
	return nil
}

func (m *memMeta) Household(context.Context) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.householdID, m.peerDeviceID, nil
}

func (m *memMeta) LastSyncAt(context.Context) (*int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSyncAt, nil
}

func (m *memMeta) SetLastSyncAt(_ context.Context, ts int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSyncAt = &ts
	return nil
}

// pipeConn is one end of an in-memory connection pair. Each end delivers
// incoming messages from its own queue on a dedicated goroutine, so ordering
// matches send order and neither side can deadlock the other.
type pipeConn struct {
	mu        sync.Mutex
	peer      *pipeConn
	subs      []func(string)
	chunkSubs []func(int, int)
	closed    bool

	incoming chan string
}

func newConnPair() (*pipeConn, *pipeConn) {
	a := &pipeConn{incoming: make(chan string, 64)}
	b := &pipeConn{incoming: make(chan string, 64)}
	a.peer = b
	b.peer = a
	go a.dispatch()
	go b.dispatch()
	return a, b
}

func (c *pipeConn) dispatch() {
	for msg := range c.incoming {
		// hold delivery until a session attaches, as a real connection only
		// carries messages after both sides reached open
		for {
			c.mu.Lock()
			subs := make([]func(string), len(c.subs))
			copy(subs, c.subs)
			c.mu.Unlock()
			if len(subs) > 0 {
				for _, fn := range subs {
					fn(msg)
				}
				break
			}
			time.Sleep(time.Millisecond)
		}
	}
}

func (c *pipeConn) Send(payload string) error {
	c.peer.incoming <- payload
	return nil
}

func (c *pipeConn) SendWithProgress(_ context.Context, payload string, onProgress func(sent, total int)) error {
	if onProgress != nil {
		onProgress(1, 1)
	}
	return c.Send(payload)
}

func (c *pipeConn) OnMessage(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *pipeConn) OnChunkProgress(fn func(int, int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunkSubs = append(c.chunkSubs, fn)
}

func (c *pipeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
