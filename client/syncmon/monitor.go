// Package syncmon tracks when each resource was last confirmed in sync with
// the server, so callers can skip redundant fetches. It is the client-side
// staleness policy: a fixed expiration window per scope, short-circuited to
// "refetch" whenever a write is in flight against that scope.
package syncmon

import (
	"sync"
	"time"
)

// DefaultExpiration is how long a recorded sync stays trustworthy.
const DefaultExpiration = 30 * time.Minute

// collectionScope keys the whole-collection timestamp alongside per-id ones.
const collectionScope = "collection"

// PendingChange records a mutation that has been issued but not yet
// reconciled by a subsequent successful sync.
type PendingChange struct {
	ChangeType string
	Timestamp  time.Time
}

// Monitor is safe for concurrent use. The zero value is not usable; call
// NewMonitor.
type Monitor struct {
	mu      sync.Mutex
	now     func() time.Time
	syncs   map[string]map[string]time.Time
	pending map[string]map[string]PendingChange
}

type Option func(*Monitor)

// WithClock injects the time source, letting tests control staleness.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{
		now:     time.Now,
		syncs:   make(map[string]map[string]time.Time),
		pending: make(map[string]map[string]PendingChange),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SyncOptions scopes a RecordSync call. An empty ID stamps the collection.
type SyncOptions struct {
	ID              string
	ClearAllPending bool
}

// RecordSync stamps the scope with the current time and clears the pending
// entry it confirms. ClearAllPending is used after a full-list refetch.
func (m *Monitor) RecordSync(resource string, opts SyncOptions) {
	m.mu.Lock()
	defer m.mu.Unlock()

	scope := collectionScope
	if opts.ID != "" {
		scope = opts.ID
	}
	if m.syncs[resource] == nil {
		m.syncs[resource] = make(map[string]time.Time)
	}
	m.syncs[resource][scope] = m.now()

	if opts.ID != "" {
		delete(m.pending[resource], opts.ID)
	} else if opts.ClearAllPending {
		delete(m.pending, resource)
	}
}

// NeedsSyncOptions scopes a NeedsSync check. A zero Expiration means
// DefaultExpiration.
type NeedsSyncOptions struct {
	ID         string
	Expiration time.Duration
}

// NeedsSync reports whether the scope should be refetched: never synced,
// synced longer ago than the expiration window, or shadowed by a pending
// change (any pending change at all when checking the collection).
func (m *Monitor) NeedsSync(resource string, opts NeedsSyncOptions) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiration := opts.Expiration
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	scope := collectionScope
	if opts.ID != "" {
		scope = opts.ID
	}

	last, ok := m.syncs[resource][scope]
	if !ok || m.now().Sub(last) > expiration {
		return true
	}

	if opts.ID != "" {
		_, dirty := m.pending[resource][opts.ID]
		return dirty
	}
	return len(m.pending[resource]) > 0
}

// RecordPendingChange marks a mutation as in flight for the given record,
// called before the request is issued so concurrent reads treat the scope as
// stale until the mutation's own RecordSync clears it.
func (m *Monitor) RecordPendingChange(resource, id, changeType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending[resource] == nil {
		m.pending[resource] = make(map[string]PendingChange)
	}
	m.pending[resource][id] = PendingChange{
		ChangeType: changeType,
		Timestamp:  m.now(),
	}
}

// PendingChanges returns the ids with unconfirmed mutations, per resource.
func (m *Monitor) PendingChanges() map[string][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string][]string)
	for resource, changes := range m.pending {
		if len(changes) == 0 {
			continue
		}
		ids := make([]string, 0, len(changes))
		for id := range changes {
			ids = append(ids, id)
		}
		out[resource] = ids
	}
	return out
}

// LastSyncTime returns when the scope was last synced. An empty id asks for
// the collection scope.
func (m *Monitor) LastSyncTime(resource, id string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	scope := collectionScope
	if id != "" {
		scope = id
	}
	t, ok := m.syncs[resource][scope]
	return t, ok
}
