package draft

import (
	"sync"
	"time"
)

type entry struct {
	store       *Store
	lastSeen    time.Time
	unsubscribe func()
}

// Registry keeps one draft Store per browser session. Drafts idle for longer
// than the TTL are dropped the next time the registry is touched.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// NewRegistry creates a registry; ttl <= 0 keeps drafts until released.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Open returns the session's draft, creating an empty one if needed.
func (r *Registry) Open(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	if e, ok := r.entries[sessionID]; ok {
		e.lastSeen = now
		return e.store
	}

	store := NewStore()
	e := &entry{store: store, lastSeen: now}
	e.unsubscribe = store.Subscribe(func(Snapshot) { r.touch(sessionID, store) })
	r.entries[sessionID] = e
	return store
}

// Get returns the session's draft without creating one.
func (r *Registry) Get(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.store, true
}

// Release drops the session's draft.
func (r *Registry) Release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(sessionID)
}

// Len reports the number of live drafts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(r.now())
	return len(r.entries)
}

func (r *Registry) touch(sessionID string, store *Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// the session may have been released and reopened with a new store
	if e, ok := r.entries[sessionID]; ok && e.store == store {
		e.lastSeen = r.now()
	}
}

func (r *Registry) evictLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			r.removeLocked(id)
		}
	}
}

func (r *Registry) removeLocked(sessionID string) {
	if e, ok := r.entries[sessionID]; ok {
		e.unsubscribe()
		delete(r.entries, sessionID)
	}
}
