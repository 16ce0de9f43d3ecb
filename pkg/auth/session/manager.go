package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/google/uuid"
)

// record tracks one live session, for both logged-in users and anonymous
// visitors. Visitor favorites and per-session analytics dedupe live here and
// are discarded on expiry; they never reach durable storage.
type record struct {
	userID    string
	favorites map[string]struct{}
	seen      map[string]struct{}
	expiresAt time.Time
}

// Manager is the in-process session registry. Sessions expire after the
// configured TTL; expired entries are swept lazily on access.
type Manager struct {
	mu            sync.Mutex
	ttl           time.Duration
	sweepInterval time.Duration
	nextSweep     time.Time
	clock         func() time.Time
	sessions      map[string]*record
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// NewManager constructs the in-memory session manager.
func NewManager(cfg config.SessionConfig) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = time.Minute
	}
	return &Manager{
		ttl:           cfg.TTL,
		sweepInterval: sweep,
		clock:         time.Now,
		sessions:      map[string]*record{},
	}, nil
}

// WithClock overrides the time source. Intended for tests.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	if clock != nil {
		m.clock = clock
	}
	return m
}

// NewSessionID produces a stable identifier used as the JWT jti or the
// visitor session header value.
func NewSessionID() string {
	return uuid.NewString()
}

// Begin registers (or refreshes) a session. userID is empty for visitors.
func (m *Manager) Begin(sessionID, userID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	entry, ok := m.sessions[sessionID]
	if !ok {
		entry = newRecord()
		m.sessions[sessionID] = entry
	}
	if userID != "" {
		entry.userID = userID
	}
	entry.expiresAt = m.clock().Add(m.ttl)
	return nil
}

// HasSession reports whether the session is registered and unexpired.
func (m *Manager) HasSession(_ context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, fmt.Errorf("session id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	entry, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.After(m.clock()) {
		delete(m.sessions, sessionID)
		return false, nil
	}
	return true, nil
}

// Revoke drops the session and all of its transient state.
func (m *Manager) Revoke(_ context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// ToggleFavorite flips the visitor-scoped favorite for a product and reports
// whether the product is a favorite after the call.
func (m *Manager) ToggleFavorite(sessionID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, err := m.liveSessionLocked(sessionID)
	if err != nil {
		return false, err
	}
	if _, ok := entry.favorites[productID]; ok {
		delete(entry.favorites, productID)
		return false, nil
	}
	entry.favorites[productID] = struct{}{}
	return true, nil
}

// Favorites lists the visitor-scoped favorite product IDs.
func (m *Manager) Favorites(sessionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, err := m.liveSessionLocked(sessionID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entry.favorites))
	for id := range entry.favorites {
		ids = append(ids, id)
	}
	return ids, nil
}

// IsFavorite reports whether the product is in the visitor favorites set.
func (m *Manager) IsFavorite(sessionID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, err := m.liveSessionLocked(sessionID)
	if err != nil {
		return false, err
	}
	_, ok := entry.favorites[productID]
	return ok, nil
}

// MarkSeen records a dedupe key and reports whether this was its first
// occurrence within the session.
func (m *Manager) MarkSeen(sessionID, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, err := m.liveSessionLocked(sessionID)
	if err != nil {
		return false, err
	}
	if _, ok := entry.seen[key]; ok {
		return false, nil
	}
	entry.seen[key] = struct{}{}
	return true, nil
}

func newRecord() *record {
	return &record{
		favorites: map[string]struct{}{},
		seen:      map[string]struct{}{},
	}
}

// liveSessionLocked returns the record for an unexpired session, creating it
// on first contact so visitor traffic needs no explicit handshake.
func (m *Manager) liveSessionLocked(sessionID string) (*record, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}
	m.sweepLocked()

	entry, ok := m.sessions[sessionID]
	if ok && !entry.expiresAt.After(m.clock()) {
		delete(m.sessions, sessionID)
		ok = false
	}
	if !ok {
		entry = newRecord()
		m.sessions[sessionID] = entry
	}
	entry.expiresAt = m.clock().Add(m.ttl)
	return entry, nil
}

func (m *Manager) sweepLocked() {
	now := m.clock()
	if now.Before(m.nextSweep) {
		return
	}
	for id, entry := range m.sessions {
		if !entry.expiresAt.After(now) {
			delete(m.sessions, id)
		}
	}
	m.nextSweep = now.Add(m.sweepInterval)
}
