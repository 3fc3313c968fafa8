package simulator

import (
	"fmt"

	"github.com/offsiteio/tripsim/internal/models"
)

// resolution is one attendee's outcome for one option.
type resolution struct {
	itinerary models.Itinerary
	err       error
}

// aggregateOption folds per-attendee resolutions into option-level
// metrics. By default an option with any unresolved attendee is excluded
// (a group trip without a committed traveller is not a valid comparison);
// allowPartial keeps the option with the attendees that did resolve.
// An option that ends up with zero itineraries is always excluded.
func aggregateOption(option models.Option, index int, resolutions []resolution, allowPartial bool) (models.OptionResult, error) {
	itineraries := make([]models.Itinerary, 0, len(resolutions))
	for _, res := range resolutions {
		if res.err != nil {
			if !allowPartial {
				return models.OptionResult{}, fmt.Errorf("option %s excluded: %w", option.Key(), res.err)
			}
			continue
		}
		itineraries = append(itineraries, res.itinerary)
	}
	if len(itineraries) == 0 {
		return models.OptionResult{}, fmt.Errorf("option %s excluded: no attendee resolved", option.Key())
	}

	var totalCost float64
	var totalTravel, connections int
	minArrival, maxArrival := itineraries[0].ArrivalMinutes, itineraries[0].ArrivalMinutes
	for _, it := range itineraries {
		totalCost += it.Quote.Price
		totalTravel += it.TravelMinutes
		if it.Quote.Stops > 0 {
			connections++
		}
		if it.ArrivalMinutes < minArrival {
			minArrival = it.ArrivalMinutes
		}
		if it.ArrivalMinutes > maxArrival {
			maxArrival = it.ArrivalMinutes
		}
	}

	n := float64(len(itineraries))
	return models.OptionResult{
		Option:               option,
		OptionIndex:          index,
		Itineraries:          itineraries,
		TotalCost:            totalCost,
		AvgTravelTimeMinutes: float64(totalTravel) / n,
		ArrivalSpreadMinutes: float64(maxArrival - minArrival),
		ConnectionsRate:      float64(connections) / n,
	}, nil
}
