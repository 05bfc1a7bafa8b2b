// Package caching provides the in-memory store for live editor sessions.
package caching

import (
	"sync"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/editor"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
)

// SessionStore holds at most one live editor session per module, bounded by
// capacity and idle TTL. A session evicted here is simply discarded; unsaved
// edits are only ever persisted through an explicit save.
type SessionStore struct {
	sessions map[string]*entry
	capacity int
	ttl      time.Duration
	mu       sync.Mutex
	logger   *logging.ChanneledLogger
}

type entry struct {
	session  *editor.Session
	lastUsed time.Time
}

// NewSessionStore creates a session store. capacity below 1 falls back to a
// single session; ttl of zero disables idle eviction.
func NewSessionStore(capacity int, ttl time.Duration, logger *logging.ChanneledLogger) *SessionStore {
	if capacity < 1 {
		capacity = 1
	}
	if logger != nil {
		logger.Cache().Info("Initializing editor session store", "capacity", capacity, "ttl", ttl)
	}
	return &SessionStore{
		sessions: make(map[string]*entry),
		capacity: capacity,
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the live session for a module, refreshing its idle timer.
func (ss *SessionStore) Get(moduleID string) (*editor.Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sweepLocked()

	e, ok := ss.sessions[moduleID]
	if !ok {
		return nil, false
	}
	e.lastUsed = time.Now().UTC()
	return e.session, true
}

// Put registers the live session for a module, replacing any previous one
// and evicting the least recently used session beyond capacity.
func (ss *SessionStore) Put(session *editor.Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sweepLocked()

	ss.sessions[session.ModuleID] = &entry{session: session, lastUsed: time.Now().UTC()}

	for len(ss.sessions) > ss.capacity {
		oldest := ""
		var oldestUsed time.Time
		for moduleID, e := range ss.sessions {
			if oldest == "" || e.lastUsed.Before(oldestUsed) {
				oldest, oldestUsed = moduleID, e.lastUsed
			}
		}
		delete(ss.sessions, oldest)
		if ss.logger != nil {
			ss.logger.Cache().Debug("Evicted editor session over capacity", "moduleId", oldest)
		}
	}
}

// Delete discards the live session for a module, if any.
func (ss *SessionStore) Delete(moduleID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, moduleID)
}

// Len returns the number of live sessions.
func (ss *SessionStore) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// sweepLocked drops sessions idle beyond the TTL. Callers hold the lock.
func (ss *SessionStore) sweepLocked() {
	if ss.ttl <= 0 {
		return
	}
	cutoff := time.Now().UTC().Add(-ss.ttl)
	for moduleID, e := range ss.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(ss.sessions, moduleID)
			if ss.logger != nil {
				ss.logger.Cache().Debug("Evicted idle editor session", "moduleId", moduleID)
			}
		}
	}
}
