package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/offsiteio/tripsim/internal/models"
	"github.com/offsiteio/tripsim/internal/pricing"
)

// ErrProvider marks a key for which both the primary and the fallback
// provider failed.
var ErrProvider = errors.New("all pricing providers failed")

// inflight is the per-key in-flight marker: the first caller for a key
// registers one and runs the provider call; later callers for the same
// key wait on done instead of duplicating work.
type inflight struct {
	done  chan struct{}
	quote models.PriceQuote
	err   error
}

// QuoteCache memoizes provider calls behind two tiers: a bounded
// in-process LRU and a durable QuoteStore. A durable hit is promoted into
// the LRU. On a miss in both, the supplied provider runs under a bounded
// timeout; on timeout or quote failure the configured fallback provider
// is retried exactly once.
//
// The mutex guards the LRU and the in-flight map only. It is never held
// across a store lookup or a provider call.
type QuoteCache struct {
	mu       sync.Mutex
	lru      *LRU
	calls    map[string]*inflight
	store    QuoteStore
	fallback pricing.Provider
	timeout  time.Duration
	log      *logrus.Entry
}

// Options configures a QuoteCache.
type Options struct {
	Capacity int
	Store    QuoteStore
	Fallback pricing.Provider // nil disables the fallback retry
	Timeout  time.Duration
}

func New(opts Options) *QuoteCache {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = 1000
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &QuoteCache{
		lru:      NewLRU(capacity),
		calls:    make(map[string]*inflight),
		store:    store,
		fallback: opts.Fallback,
		timeout:  timeout,
		log:      logrus.WithField("component", "quote_cache"),
	}
}

// GetOrFetch returns the quote for key, fetching it through provider on a
// miss. Concurrent calls for the same key issue at most one provider call.
func (c *QuoteCache) GetOrFetch(ctx context.Context, key models.PriceQuoteKey, provider pricing.Provider) (models.PriceQuote, error) {
	k := key.String()

	c.mu.Lock()
	if quote, ok := c.lru.Get(k); ok {
		c.mu.Unlock()
		return quote, nil
	}
	if call, ok := c.calls[k]; ok {
		c.mu.Unlock()
		return c.await(ctx, call)
	}
	call := &inflight{done: make(chan struct{})}
	c.calls[k] = call
	c.mu.Unlock()

	quote, err := c.fill(ctx, key, k, provider)

	call.quote, call.err = quote, err
	c.mu.Lock()
	delete(c.calls, k)
	c.mu.Unlock()
	close(call.done)

	return quote, err
}

// await blocks until the in-flight call for the key settles, or the
// waiter's own context is cancelled.
func (c *QuoteCache) await(ctx context.Context, call *inflight) (models.PriceQuote, error) {
	select {
	case <-ctx.Done():
		return models.PriceQuote{}, ctx.Err()
	case <-call.done:
		return call.quote, call.err
	}
}

// fill resolves a miss: durable tier first, then the provider with the
// fallback policy. Runs outside the cache mutex.
func (c *QuoteCache) fill(ctx context.Context, key models.PriceQuoteKey, k string, provider pricing.Provider) (models.PriceQuote, error) {
	quote, ok, err := c.store.Get(ctx, k)
	if err != nil {
		c.log.WithError(err).WithField("key", k).Warn("durable tier lookup failed, treating as miss")
	} else if ok {
		c.mu.Lock()
		c.lru.Put(k, quote)
		c.mu.Unlock()
		return quote, nil
	}

	quote, err = c.callProvider(ctx, key, provider)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return models.PriceQuote{}, err
		}
		if c.fallback == nil {
			return models.PriceQuote{}, fmt.Errorf("%w: %s: %v", ErrProvider, k, err)
		}
		c.log.WithField("key", k).WithField("fallback", c.fallback.Name()).
			WithError(err).Info("primary provider failed, retrying against fallback")
		quote, err = c.callProvider(ctx, key, c.fallback)
		if err != nil {
			return models.PriceQuote{}, fmt.Errorf("%w: %s: %v", ErrProvider, k, err)
		}
	}

	if err := c.store.Put(ctx, k, quote); err != nil {
		c.log.WithError(err).WithField("key", k).Warn("durable tier write failed")
	}
	c.mu.Lock()
	c.lru.Put(k, quote)
	c.mu.Unlock()
	return quote, nil
}

type providerResult struct {
	quote models.PriceQuote
	err   error
}

// callProvider runs one provider call under the bounded timeout. On
// expiry the call is abandoned: a result that arrives later is discarded
// via the buffered channel.
func (c *QuoteCache) callProvider(ctx context.Context, key models.PriceQuoteKey, provider pricing.Provider) (models.PriceQuote, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resCh := make(chan providerResult, 1)
	go func() {
		quote, err := provider.Quote(callCtx, key)
		resCh <- providerResult{quote: quote, err: err}
	}()

	select {
	case <-callCtx.Done():
		if ctx.Err() != nil {
			// run cancelled, not a provider timeout: no fallback
			return models.PriceQuote{}, ctx.Err()
		}
		return models.PriceQuote{}, fmt.Errorf("%w: provider %s: %v", pricing.ErrQuoteUnavailable, provider.Name(), callCtx.Err())
	case res := <-resCh:
		if res.err != nil {
			return models.PriceQuote{}, res.err
		}
		return res.quote, nil
	}
}

// Clear drops both tiers.
func (c *QuoteCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.lru.Clear()
	c.mu.Unlock()
	return c.store.Clear(ctx)
}

// EvictBefore removes durable entries cached before cutoff. The LRU is
// cleared as well so stale entries cannot outlive their durable copies.
func (c *QuoteCache) EvictBefore(ctx context.Context, cutoff time.Time) error {
	c.mu.Lock()
	c.lru.Clear()
	c.mu.Unlock()
	return c.store.EvictBefore(ctx, cutoff)
}

// MemoryLen reports the in-process tier's entry count.
func (c *QuoteCache) MemoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
