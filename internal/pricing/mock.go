package pricing

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/offsiteio/tripsim/internal/models"
)

// airlines the mock picks from. Fixed order matters for determinism.
var mockAirlines = []string{"AA", "UA", "DL", "BA", "LH", "AF", "KL", "LX", "VS", "EK", "QF", "SQ"}

var departureMinutes = []int{0, 15, 30, 45}

// MockProvider generates deterministic fake quotes: the same canonical key
// always yields the same PriceQuote. With volatility enabled the price is
// perturbed by up to ±5%, still seeded from the key, never from the clock.
type MockProvider struct {
	volatile bool
}

func NewMockProvider(volatile bool) *MockProvider {
	return &MockProvider{volatile: volatile}
}

func (m *MockProvider) Name() string { return "mock" }

// seededRand derives a rand.Rand from the canonical key string, so the
// draw sequence is a pure function of the key.
func seededRand(key string) *rand.Rand {
	sum := md5.Sum([]byte(key))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed))
}

func (m *MockProvider) Quote(_ context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
	rng := seededRand(key.String())

	// $200-$2000 base fare, scaled by cabin class
	price := (200.0 + rng.Float64()*1800.0) * key.TravelClass.Multiplier()
	if m.volatile {
		price *= 0.95 + rng.Float64()*0.1
	}

	stops := rng.Intn(3)
	travelMinutes := 200 + rng.Intn(1001)
	departMinutes := (6+rng.Intn(17))*60 + departureMinutes[rng.Intn(len(departureMinutes))]
	arriveMinutes := (departMinutes + travelMinutes) % (24 * 60)
	airline := mockAirlines[rng.Intn(len(mockAirlines))]

	return models.PriceQuote{
		Origin:        key.Origin,
		Destination:   key.Destination,
		DepartDate:    key.DepartDate,
		ReturnDate:    key.ReturnDate,
		TravelClass:   key.TravelClass,
		Airline:       airline,
		Stops:         stops,
		Price:         math.Round(price*100) / 100,
		Currency:      "USD",
		DepartMinutes: departMinutes,
		ArriveMinutes: arriveMinutes,
		TravelMinutes: travelMinutes,
		BookingLink: fmt.Sprintf("https://concur.example.com/book?origin=%s&dest=%s&date=%s",
			key.Origin, key.Destination, key.DepartDate.Format("2006-01-02")),
	}, nil
}
