// Package session holds analysis snapshots between submission and
// report rendering. A snapshot is written wholesale on a successful
// analysis, read once when the report mounts, and overwritten by the
// next submission. Entries expire with the session TTL; nothing is
// persisted.
package session

import (
	"sync"
	"time"
)

type entry struct {
	snapshot  []byte
	expiresAt time.Time
}

// Store is an in-memory, TTL-bounded snapshot store keyed by session ID.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	done    chan struct{}
}

// NewStore creates a Store whose entries expire after ttl. A background
// janitor evicts expired entries; call Close to stop it.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stores a snapshot for the session, replacing any previous one.
func (s *Store) Put(sessionID string, snapshot []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = entry{
		snapshot:  snapshot,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get returns the stored snapshot for the session, if any. Reading does
// not consume the entry; the same report can be reloaded until the
// session expires.
func (s *Store) Get(sessionID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.snapshot, true
}

// Close stops the janitor goroutine.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) janitor() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
