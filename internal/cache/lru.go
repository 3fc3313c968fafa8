// Package cache implements the two-tier price cache in front of the
// pricing providers.
package cache

import (
	"container/list"

	"github.com/offsiteio/tripsim/internal/models"
)

type lruEntry struct {
	key   string
	quote models.PriceQuote
}

// LRU is the fixed-capacity in-process tier. Eviction is pure
// least-recently-used by access order. Not safe for concurrent use; the
// QuoteCache serializes access.
type LRU struct {
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		panic("cache: LRU capacity must be > 0")
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached quote and refreshes its recency.
func (l *LRU) Get(key string) (models.PriceQuote, bool) {
	el, ok := l.entries[key]
	if !ok {
		return models.PriceQuote{}, false
	}
	l.order.MoveToFront(el)
	return el.Value.(*lruEntry).quote, true
}

// Put inserts or refreshes a quote, evicting the least-recently-used
// entry when over capacity.
func (l *LRU) Put(key string, quote models.PriceQuote) {
	if el, ok := l.entries[key]; ok {
		el.Value.(*lruEntry).quote = quote
		l.order.MoveToFront(el)
		return
	}
	l.entries[key] = l.order.PushFront(&lruEntry{key: key, quote: quote})
	if l.order.Len() > l.capacity {
		oldest := l.order.Back()
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*lruEntry).key)
	}
}

func (l *LRU) Len() int { return l.order.Len() }

func (l *LRU) Capacity() int { return l.capacity }

// Clear drops every entry.
func (l *LRU) Clear() {
	l.order.Init()
	l.entries = make(map[string]*list.Element, l.capacity)
}
