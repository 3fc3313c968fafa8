package simulator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offsiteio/tripsim/internal/cache"
	"github.com/offsiteio/tripsim/internal/models"
	"github.com/offsiteio/tripsim/internal/pricing"
)

func testEvent() models.Event {
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	return models.Event{
		ID:                 "evt_offsite",
		Name:               "Engineering Offsite",
		CandidateLocations: []string{"LIS", "MUC"},
		CandidateDateWindows: []models.DateWindow{
			{Start: start, End: start.AddDate(0, 0, 4)},
		},
		DurationDays: 3,
	}
}

func testAttendees() []models.Attendee {
	return []models.Attendee{
		{ID: "att_1", EmployeeID: "EMP-00001", HomeAirport: "JFK", TravelClass: models.ClassEconomy},
		{ID: "att_2", EmployeeID: "EMP-00002", HomeAirport: "LAX", TravelClass: models.ClassEconomy},
	}
}

// newTestSimulator wires an engine around an arbitrary provider, which
// Simulator.New deliberately does not allow.
func newTestSimulator(cfg *models.Config, provider pricing.Provider) *Simulator {
	quoteCache := cache.New(cache.Options{
		Capacity: cfg.CacheCapacity,
		Timeout:  cfg.ProviderTimeout,
	})
	return &Simulator{
		Config:   cfg,
		Cache:    quoteCache,
		resolver: NewResolver(quoteCache, provider),
		scorer:   NewScorer(cfg.Weights),
		log:      logrus.WithField("component", "simulator"),
	}
}

func TestSimulate_EndToEnd_MockProvider(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Workers = 4
	sim, err := New(cfg, cache.NewMemoryStore())
	require.NoError(t, err)

	event := testEvent()
	attendees := testAttendees()

	result, err := sim.Simulate(context.Background(), event, attendees)
	require.NoError(t, err)

	// 2 locations x 1 window = 2 options, each with 2 itineraries
	require.Len(t, result.Results, 2)
	for _, optionResult := range result.Results {
		assert.Len(t, optionResult.Itineraries, 2)
		assert.GreaterOrEqual(t, optionResult.ConnectionsRate, 0.0)
		assert.LessOrEqual(t, optionResult.ConnectionsRate, 1.0)
		assert.GreaterOrEqual(t, optionResult.ArrivalSpreadMinutes, 0.0)
	}

	// ascending by score
	assert.LessOrEqual(t, result.Results[0].Score, result.Results[1].Score)
	assert.Zero(t, result.ExcludedOptions)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, event.ID, result.EventID)
	require.Len(t, result.RankedOptions, 2)

	// total cost matches the sum of the deterministic mock quotes
	mock := pricing.NewMockProvider(false)
	for _, optionResult := range result.Results {
		var want float64
		for _, attendee := range attendees {
			key := models.NewPriceQuoteKey(
				attendee.HomeAirport,
				optionResult.Option.Location,
				optionResult.Option.DepartDate(),
				optionResult.Option.ReturnDate(),
				attendee.TravelClass,
			)
			quote, err := mock.Quote(context.Background(), key)
			require.NoError(t, err)
			want += quote.Price
		}
		assert.InDelta(t, want, optionResult.TotalCost, 0.001)
	}
}

func TestSimulate_Deterministic_RepeatRunsMatch(t *testing.T) {
	cfg := models.DefaultConfig()
	sim, err := New(cfg, cache.NewMemoryStore())
	require.NoError(t, err)

	first, err := sim.Simulate(context.Background(), testEvent(), testAttendees())
	require.NoError(t, err)
	second, err := sim.Simulate(context.Background(), testEvent(), testAttendees())
	require.NoError(t, err)

	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Option, second.Results[i].Option)
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
		assert.Equal(t, first.Results[i].Itineraries, second.Results[i].Itineraries)
	}
	assert.Equal(t, 2, second.Version, "re-runs bump the version tag")
}

func TestSimulate_FailingDestination_ExcludesOption(t *testing.T) {
	cfg := models.DefaultConfig()
	mock := pricing.NewMockProvider(false)
	// GIVEN a provider that cannot price anything into MUC
	stub := pricing.QuoteFunc(func(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
		if key.Destination == "MUC" {
			return models.PriceQuote{}, fmt.Errorf("%w: no fares for MUC", pricing.ErrQuoteUnavailable)
		}
		return mock.Quote(ctx, key)
	})
	sim := newTestSimulator(cfg, stub)

	result, err := sim.Simulate(context.Background(), testEvent(), testAttendees())

	// THEN the run still succeeds with the surviving option
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "LIS", result.Results[0].Option.Location)
	assert.Equal(t, 1, result.ExcludedOptions)
}

func TestSimulate_AllOptionsExcluded_SimulationError(t *testing.T) {
	cfg := models.DefaultConfig()
	stub := pricing.QuoteFunc(func(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
		return models.PriceQuote{}, fmt.Errorf("%w: upstream down", pricing.ErrQuoteUnavailable)
	})
	sim := newTestSimulator(cfg, stub)

	_, err := sim.Simulate(context.Background(), testEvent(), testAttendees())

	assert.ErrorIs(t, err, ErrSimulation)
}

func TestSimulate_EmptyCandidates_SimulationError(t *testing.T) {
	cfg := models.DefaultConfig()
	sim, err := New(cfg, cache.NewMemoryStore())
	require.NoError(t, err)

	event := testEvent()
	event.CandidateLocations = nil
	_, err = sim.Simulate(context.Background(), event, testAttendees())
	assert.ErrorIs(t, err, ErrSimulation)

	event = testEvent()
	_, err = sim.Simulate(context.Background(), event, nil)
	assert.ErrorIs(t, err, ErrSimulation)
}

func TestSimulate_AllowPartialOptions_KeepsSurvivors(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.AllowPartialOptions = true
	mock := pricing.NewMockProvider(false)
	// one attendee cannot be priced at all
	stub := pricing.QuoteFunc(func(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
		if key.Origin == "LAX" {
			return models.PriceQuote{}, fmt.Errorf("%w: origin offline", pricing.ErrQuoteUnavailable)
		}
		return mock.Quote(ctx, key)
	})
	sim := newTestSimulator(cfg, stub)

	result, err := sim.Simulate(context.Background(), testEvent(), testAttendees())

	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	for _, optionResult := range result.Results {
		require.Len(t, optionResult.Itineraries, 1)
		assert.Equal(t, "att_1", optionResult.Itineraries[0].AttendeeID)
	}
}

func TestSimulate_MaxConnectionsConstraint_ExcludesOption(t *testing.T) {
	cfg := models.DefaultConfig()
	zero := 0
	attendees := testAttendees()
	attendees[0].MaxConnections = &zero

	// every quote has exactly one stop
	stub := pricing.QuoteFunc(func(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
		return models.PriceQuote{
			Origin: key.Origin, Destination: key.Destination,
			Price: 500, Currency: "USD", Airline: "LH",
			Stops: 1, DepartMinutes: 540, ArriveMinutes: 900, TravelMinutes: 360,
		}, nil
	})
	sim := newTestSimulator(cfg, stub)

	_, err := sim.Simulate(context.Background(), testEvent(), attendees)

	assert.ErrorIs(t, err, ErrSimulation, "every option trips the connections constraint")
}

func TestSimulate_ZeroWorkerCount_StillCompletes(t *testing.T) {
	cfg := models.DefaultConfig()
	// the zero value a programmatically built config carries
	cfg.Workers = 0
	sim, err := New(cfg, cache.NewMemoryStore())
	require.NoError(t, err)

	var result *models.SimulationResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err = sim.Simulate(context.Background(), testEvent(), testAttendees())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Simulate never returned with a zero worker count")
	}
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
}

func TestSimulate_Cancellation_ReturnsContextError(t *testing.T) {
	cfg := models.DefaultConfig()
	sim, err := New(cfg, cache.NewMemoryStore())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Simulate(ctx, testEvent(), testAttendees())

	assert.ErrorIs(t, err, context.Canceled)
}
