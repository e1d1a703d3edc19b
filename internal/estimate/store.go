package estimate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bodyshop-estimator/internal/catalog"
	"bodyshop-estimator/internal/logging"
	"bodyshop-estimator/internal/metrics"
)

// Store keeps sessions in memory only; nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  *catalog.Catalog
}

func NewStore(c *catalog.Catalog) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		catalog:  c,
	}
}

// Create starts an empty session against the store's catalog.
func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString(), st.catalog)

	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete reports whether the session existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (st *Store) RunJanitor(ctx context.Context, interval, maxIdle time.Duration, log *logging.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(maxIdle); n > 0 {
				log.Debug("expired estimate sessions", zap.Int("removed", n), zap.Int("active", st.Len()))
			}
		}
	}
}
