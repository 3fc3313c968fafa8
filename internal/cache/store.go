package cache

import (
	"context"
	"sync"
	"time"

	"github.com/offsiteio/tripsim/internal/models"
)

// QuoteStore is the durable tier behind the in-process LRU. Unbounded;
// EvictBefore and Clear exist for external housekeeping.
type QuoteStore interface {
	Get(ctx context.Context, key string) (models.PriceQuote, bool, error)
	Put(ctx context.Context, key string, quote models.PriceQuote) error
	EvictBefore(ctx context.Context, cutoff time.Time) error
	Clear(ctx context.Context) error
}

type storedQuote struct {
	quote    models.PriceQuote
	cachedAt time.Time
}

// MemoryStore is a process-local QuoteStore. Used when no database is
// configured, and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]storedQuote
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]storedQuote),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (models.PriceQuote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return models.PriceQuote{}, false, nil
	}
	return entry.quote, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, quote models.PriceQuote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = storedQuote{quote: quote, cachedAt: s.now()}
	return nil
}

func (s *MemoryStore) EvictBefore(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if entry.cachedAt.Before(cutoff) {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]storedQuote)
	return nil
}

// Len reports the number of stored quotes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
