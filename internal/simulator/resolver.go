package simulator

import (
	"context"
	"fmt"

	"github.com/offsiteio/tripsim/internal/cache"
	"github.com/offsiteio/tripsim/internal/models"
	"github.com/offsiteio/tripsim/internal/pricing"
)

// ResolutionError marks one attendee whose itinerary could not be built
// for one option. The aggregator decides what it means for the option;
// it never aborts the run by itself.
type ResolutionError struct {
	AttendeeID string
	OptionKey  string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve attendee %s for option %s: %v", e.AttendeeID, e.OptionKey, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolver turns one (attendee, option) pair into an itinerary by asking
// the quote cache.
type Resolver struct {
	cache    *cache.QuoteCache
	provider pricing.Provider
}

func NewResolver(quoteCache *cache.QuoteCache, provider pricing.Provider) *Resolver {
	return &Resolver{cache: quoteCache, provider: provider}
}

// Resolve builds the canonical quote key for the pair (departure at the
// window start, return after the trip duration), fetches the quote and
// normalizes it into a per-attendee itinerary.
func (r *Resolver) Resolve(ctx context.Context, attendee models.Attendee, option models.Option) (models.Itinerary, error) {
	key := models.NewPriceQuoteKey(
		attendee.HomeAirport,
		option.Location,
		option.DepartDate(),
		option.ReturnDate(),
		attendee.TravelClass,
	)

	quote, err := r.cache.GetOrFetch(ctx, key, r.provider)
	if err != nil {
		return models.Itinerary{}, &ResolutionError{AttendeeID: attendee.ID, OptionKey: option.Key(), Err: err}
	}

	if attendee.MaxConnections != nil && quote.Stops > *attendee.MaxConnections {
		return models.Itinerary{}, &ResolutionError{
			AttendeeID: attendee.ID,
			OptionKey:  option.Key(),
			Err:        fmt.Errorf("quoted %d stops exceeds attendee limit of %d", quote.Stops, *attendee.MaxConnections),
		}
	}

	return models.Itinerary{
		AttendeeID:     attendee.ID,
		EmployeeID:     attendee.EmployeeID,
		Quote:          quote,
		ArrivalMinutes: quote.ArriveMinutes,
		TravelMinutes:  quote.TravelMinutes,
	}, nil
}
