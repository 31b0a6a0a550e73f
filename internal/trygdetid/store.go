package trygdetid

import (
	"context"
	"sync"
	"time"
)

// TimelineCache holds assembled timelines between requests, keyed by case and
// claimant. A miss is not an error; (zero, false, nil) means recompute.
type TimelineCache interface {
	Get(ctx context.Context, rinaCaseID, claimantPIN string) (Timeline, bool, error)
	Set(ctx context.Context, timeline Timeline) error
}

// cacheKey scopes cached timelines so a claimant-filtered view never shadows
// the case-level one.
func cacheKey(rinaCaseID, claimantPIN string) string {
	return rinaCaseID + "|" + claimantPIN
}

type memoryEntry struct {
	timeline Timeline
	expires  time.Time
}

// MemoryStore is the in-process cache used when Redis is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, rinaCaseID, claimantPIN string) (Timeline, bool, error) {
	key := cacheKey(rinaCaseID, claimantPIN)
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Timeline{}, false, nil
	}
	if s.now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return Timeline{}, false, nil
	}
	return entry.timeline, true, nil
}

func (s *MemoryStore) Set(_ context.Context, timeline Timeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cacheKey(timeline.RinaCaseID, timeline.ClaimantPIN)] = memoryEntry{
		timeline: timeline,
		expires:  s.now().Add(s.ttl),
	}
	return nil
}
