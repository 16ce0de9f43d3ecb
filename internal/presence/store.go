package presence

import (
	"strings"
	"sync"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
)

// Store tracks which sessions were seen within the TTL window. It is purely
// in-memory; a restart forgets everyone, which is acceptable for a
// "usuarios activos" counter.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock func() time.Time
	seen  map[string]time.Time
}

// New builds the presence store from config.
func New(cfg config.PresenceConfig) *Store {
	return &Store{
		ttl:   cfg.TTL(),
		clock: time.Now,
		seen:  map[string]time.Time{},
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *Store) WithClock(clock func() time.Time) *Store {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// Heartbeat records activity for the session and sweeps expired entries.
func (s *Store) Heartbeat(sessionID string) {
	if strings.TrimSpace(sessionID) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.sweepLocked(now)
	s.seen[sessionID] = now
}

// CountActive reports how many sessions were seen within the TTL window.
func (s *Store) CountActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.clock())
	return len(s.seen)
}

func (s *Store) sweepLocked(now time.Time) {
	cutoff := now.Add(-s.ttl)
	for id, last := range s.seen {
		if last.Before(cutoff) {
			delete(s.seen, id)
		}
	}
}
