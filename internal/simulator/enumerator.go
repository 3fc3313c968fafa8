// Package simulator implements the option simulation engine: enumeration,
// itinerary resolution, metric aggregation and scoring.
package simulator

import "github.com/offsiteio/tripsim/internal/models"

// Enumerate builds the cross product of candidate locations and candidate
// date windows. Order is deterministic (locations in input order, windows
// in input order); score ties resolve by this order.
func Enumerate(event models.Event) []models.Option {
	options := make([]models.Option, 0, len(event.CandidateLocations)*len(event.CandidateDateWindows))
	for _, location := range event.CandidateLocations {
		for _, window := range event.CandidateDateWindows {
			options = append(options, models.Option{
				Location:     location,
				Window:       window,
				DurationDays: event.DurationDays,
			})
		}
	}
	return options
}
