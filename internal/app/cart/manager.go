package cart

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/paikari/paikariworld-backend/pkg/logger"
)

type session struct {
	store    *Store
	width    atomic.Int64
	lastSeen time.Time
}

// Manager hands out one Store per guest session, created lazily over
// that session's persisted record. It also tracks each session's last
// reported viewport width, which feeds the store's viewport function.
type Manager struct {
	mu         sync.Mutex
	sessions   map[string]*session
	factory    PersisterFactory
	breakpoint int
}

func NewManager(factory PersisterFactory, breakpoint int) *Manager {
	if breakpoint <= 0 {
		breakpoint = DefaultTabletBreakpoint
	}
	return &Manager{
		sessions:   make(map[string]*session),
		factory:    factory,
		breakpoint: breakpoint,
	}
}

// Get returns the session's store, rehydrating it from the persisted
// record on first access.
func (m *Manager) Get(sessionID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sessionID]; ok {
		sess.lastSeen = time.Now()
		return sess.store, nil
	}

	sess := &session{lastSeen: time.Now()}
	store, err := NewStore(
		m.factory(sessionID),
		WithViewport(func() int { return int(sess.width.Load()) }),
		WithBreakpoint(m.breakpoint),
	)
	if err != nil {
		logger.Error("Failed to rehydrate cart store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	sess.store = store
	m.sessions[sessionID] = sess

	logger.Debug("Cart store created for session", map[string]interface{}{
		"session_id": sessionID,
		"items":      store.Count(),
	})
	return store, nil
}

// SetViewportWidth records the session's last reported viewport width.
// Unknown sessions are ignored; Get precedes this in the request flow.
func (m *Manager) SetViewportWidth(sessionID string, width int) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if ok {
		sess.width.Store(int64(width))
	}
}

// PruneIdle evicts in-memory stores idle past maxIdle. The persisted
// records stay; an evicted session rehydrates on its next request.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for id, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of live in-memory stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
