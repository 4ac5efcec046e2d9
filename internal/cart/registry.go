package cart

import (
	"sync"
	"time"
)

const (
	// DefaultSessionTTL is how long an idle cart survives before the
	// session is considered over and the cart discarded.
	DefaultSessionTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs.
	CleanupInterval = 30 * time.Second
)

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry maps session ids to their carts. Carts are created on first
// access and dropped after the idle TTL, which bounds memory for
// abandoned sessions.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewRegistry creates a registry and starts its background cleanup.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	r := &Registry{
		entries:     make(map[string]*entry),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop()

	return r
}

func (r *Registry) cleanupLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *Registry) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}
}

// Cart returns the cart for the session, creating it if needed, and
// refreshes the session's idle timer.
func (r *Registry) Cart(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore()}
		r.entries[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e.store
}

// Drop discards the session's cart immediately.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
}

// Close stops the background cleanup and waits for it to finish.
func (r *Registry) Close() error {
	close(r.stopCleanup)
	r.wg.Wait()
	return nil
}
