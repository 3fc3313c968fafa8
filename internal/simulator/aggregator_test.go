package simulator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offsiteio/tripsim/internal/models"
)

func sampleOption() models.Option {
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	return models.Option{
		Location:     "LIS",
		Window:       models.DateWindow{Start: start, End: start.AddDate(0, 0, 4)},
		DurationDays: 3,
	}
}

func itinerary(id string, price float64, stops, arrival, travel int) resolution {
	return resolution{itinerary: models.Itinerary{
		AttendeeID:     id,
		Quote:          models.PriceQuote{Price: price, Stops: stops, Currency: "USD"},
		ArrivalMinutes: arrival,
		TravelMinutes:  travel,
	}}
}

func TestAggregateOption_Metrics(t *testing.T) {
	resolutions := []resolution{
		itinerary("a", 400, 0, 600, 300),
		itinerary("b", 600, 1, 720, 500),
	}

	result, err := aggregateOption(sampleOption(), 0, resolutions, false)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, result.TotalCost)
	assert.Equal(t, 400.0, result.AvgTravelTimeMinutes)
	assert.Equal(t, 120.0, result.ArrivalSpreadMinutes)
	assert.Equal(t, 0.5, result.ConnectionsRate)
	assert.Len(t, result.Itineraries, 2)
}

func TestAggregateOption_SingleAttendee_ZeroSpread(t *testing.T) {
	result, err := aggregateOption(sampleOption(), 0, []resolution{itinerary("a", 400, 0, 600, 300)}, false)
	require.NoError(t, err)

	assert.Zero(t, result.ArrivalSpreadMinutes)
	assert.Zero(t, result.ConnectionsRate)
}

func TestAggregateOption_UnresolvedAttendee_ExcludesOption(t *testing.T) {
	resolutions := []resolution{
		itinerary("a", 400, 0, 600, 300),
		{err: errors.New("no quote")},
	}

	_, err := aggregateOption(sampleOption(), 0, resolutions, false)
	assert.Error(t, err)
}

func TestAggregateOption_AllowPartial_KeepsResolvedAttendees(t *testing.T) {
	resolutions := []resolution{
		itinerary("a", 400, 1, 600, 300),
		{err: errors.New("no quote")},
	}

	result, err := aggregateOption(sampleOption(), 0, resolutions, true)
	require.NoError(t, err)

	assert.Len(t, result.Itineraries, 1)
	assert.Equal(t, 400.0, result.TotalCost)
	assert.Equal(t, 1.0, result.ConnectionsRate)
}

func TestAggregateOption_NoItineraries_AlwaysExcluded(t *testing.T) {
	_, err := aggregateOption(sampleOption(), 0, []resolution{{err: errors.New("no quote")}}, true)
	assert.Error(t, err)

	_, err = aggregateOption(sampleOption(), 0, nil, true)
	assert.Error(t, err)
}
