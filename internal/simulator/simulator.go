package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"

	"github.com/offsiteio/tripsim/internal/cache"
	"github.com/offsiteio/tripsim/internal/models"
	"github.com/offsiteio/tripsim/internal/pricing"
)

// ErrSimulation marks a run in which no option could be completed. It is
// the only failure mode that aborts a run.
var ErrSimulation = errors.New("simulation failed")

// Simulator owns one engine configuration: providers, cache and weights.
// Safe for concurrent runs; the quote cache is the only shared mutable
// state.
type Simulator struct {
	Config   *models.Config
	Cache    *cache.QuoteCache
	resolver *Resolver
	scorer   *Scorer
	runs     atomic.Int64
	log      *logrus.Entry

	// Progress, when set, is called after each option finishes resolving.
	Progress func(done, total int)
}

// New wires the engine from configuration: the primary and fallback
// providers are selected here, never by runtime type inspection.
func New(cfg *models.Config, store cache.QuoteStore) (*Simulator, error) {
	if cfg.Workers <= 0 {
		// a zero-worker pool would never drain the job channel
		cfg.Workers = 8
	}
	primary, err := pricing.FromConfig(cfg.PricingProvider, cfg)
	if err != nil {
		return nil, err
	}
	fallback, err := pricing.FromConfig(cfg.FallbackProvider, cfg)
	if err != nil {
		return nil, err
	}

	quoteCache := cache.New(cache.Options{
		Capacity: cfg.CacheCapacity,
		Store:    store,
		Fallback: fallback,
		Timeout:  cfg.ProviderTimeout,
	})

	return &Simulator{
		Config:   cfg,
		Cache:    quoteCache,
		resolver: NewResolver(quoteCache, primary),
		scorer:   NewScorer(cfg.Weights),
		log:      logrus.WithField("component", "simulator"),
	}, nil
}

// job is one (option, attendee) resolution unit for the worker pool.
type job struct {
	optionIdx   int
	attendeeIdx int
}

// Simulate enumerates every option for the event, resolves each
// attendee's itinerary through the cache, aggregates per-option metrics
// and returns the options ranked ascending by score. Options with an
// unresolved attendee are excluded and counted; the run fails only when
// nothing survives.
func (s *Simulator) Simulate(ctx context.Context, event models.Event, attendees []models.Attendee) (*models.SimulationResult, error) {
	options := Enumerate(event)
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: event %s has no candidate options", ErrSimulation, event.ID)
	}
	if len(attendees) == 0 {
		return nil, fmt.Errorf("%w: event %s has no attendees", ErrSimulation, event.ID)
	}

	runID := cuid.New()
	version := int(s.runs.Add(1))
	log := s.log.WithFields(logrus.Fields{"run_id": runID, "event_id": event.ID})
	log.WithFields(logrus.Fields{"options": len(options), "attendees": len(attendees)}).Info("simulation run starting")

	resolutions := s.resolveAll(ctx, options, attendees)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]models.OptionResult, 0, len(options))
	excluded := 0
	for i, option := range options {
		result, err := aggregateOption(option, i, resolutions[i], s.Config.AllowPartialOptions)
		if err != nil {
			log.WithField("option", option.Key()).WithError(err).Warn("option excluded")
			excluded++
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: all %d options excluded for event %s", ErrSimulation, len(options), event.ID)
	}

	s.scorer.Rank(results)

	ranked := make([]int, len(results))
	for i, result := range results {
		ranked[i] = result.OptionIndex
	}

	log.WithFields(logrus.Fields{
		"completed": len(results),
		"excluded":  excluded,
		"best":      results[0].Option.Key(),
	}).Info("simulation run finished")

	return &models.SimulationResult{
		RunID:           runID,
		EventID:         event.ID,
		Version:         version,
		CreatedAt:       time.Now().UTC(),
		Results:         results,
		RankedOptions:   ranked,
		ExcludedOptions: excluded,
	}, nil
}

// resolveAll fans the (option, attendee) pairs out over a bounded worker
// pool. Each pair writes to its own slot, so no locking is needed on the
// result grid.
func (s *Simulator) resolveAll(ctx context.Context, options []models.Option, attendees []models.Attendee) [][]resolution {
	grid := make([][]resolution, len(options))
	for i := range grid {
		grid[i] = make([]resolution, len(attendees))
	}

	total := len(options) * len(attendees)
	workers := s.Config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	var done atomic.Int64

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					grid[j.optionIdx][j.attendeeIdx] = resolution{err: ctx.Err()}
					continue
				}
				it, err := s.resolver.Resolve(ctx, attendees[j.attendeeIdx], options[j.optionIdx])
				grid[j.optionIdx][j.attendeeIdx] = resolution{itinerary: it, err: err}
				if s.Progress != nil {
					s.Progress(int(done.Add(1)), total)
				}
			}
		}()
	}

	for oi := range options {
		for ai := range attendees {
			jobs <- job{optionIdx: oi, attendeeIdx: ai}
		}
	}
	close(jobs)
	wg.Wait()

	return grid
}
