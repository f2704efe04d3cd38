package session

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/career-compass/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keeps sessions in memory and evicts the ones left idle longer than
// the TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ctx     context.Context
	advisor Advisor
	ttl     time.Duration
	log     *zap.Logger
	metrics *metrics.Flows
	now     func() time.Time
}

// NewStore creates a store whose sessions dispatch under ctx; cancelling ctx
// cancels every in-flight call.
func NewStore(ctx context.Context, advisor Advisor, ttl time.Duration, log *zap.Logger, m *metrics.Flows) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ctx:      ctx,
		advisor:  advisor,
		ttl:      ttl,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

func (st *Store) Create() *Session {
	s := newSession(st.ctx, st.advisor, st.log)
	s.lastSeen = st.now()

	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	st.metrics.SetSessions(n)
	st.log.Debug("session created", zap.String("session_id", s.ID.String()))
	return s
}

// Get looks up a session by its string id and marks it as seen.
func (st *Store) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	st.mu.RLock()
	s, ok := st.sessions[uid]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(st.now())
	return s, nil
}

// GetOrCreate returns the session for id, creating a new one when id is empty
// or unknown. The bool reports whether a session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if s, err := st.Get(id); err == nil {
			return s, false
		}
	}
	return st.Create(), true
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Evict removes sessions idle for longer than the TTL. Sessions with work in
// flight are kept.
func (st *Store) Evict() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	evicted := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) && !s.Busy() {
			delete(st.sessions, id)
			evicted++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if evicted > 0 {
		st.metrics.SetSessions(n)
		st.log.Info("evicted idle sessions", zap.Int("count", evicted), zap.Int("remaining", n))
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Evict()
		}
	}
}

// Wait blocks until every session has finished its in-flight work.
func (st *Store) Wait() {
	st.mu.RLock()
	all := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		all = append(all, s)
	}
	st.mu.RUnlock()
	for _, s := range all {
		s.Wait()
	}
}
