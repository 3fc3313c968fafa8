package simulator

import (
	"sort"

	"github.com/offsiteio/tripsim/internal/models"
)

// Scorer computes the transparent cost/convenience score. The weights
// come from configuration so they can be tuned without touching the
// algorithm.
type Scorer struct {
	weights models.ScoreWeights
}

func NewScorer(weights models.ScoreWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the option score. Lower is better.
func (s *Scorer) Score(result models.OptionResult) float64 {
	return result.TotalCost*s.weights.Cost +
		result.ArrivalSpreadMinutes*s.weights.Spread +
		result.AvgTravelTimeMinutes*s.weights.TravelTime +
		result.ConnectionsRate*s.weights.Connections
}

// Rank scores every result and sorts ascending. The sort is stable and
// falls back to enumeration order, so equal scores rank reproducibly.
func (s *Scorer) Rank(results []models.OptionResult) {
	for i := range results {
		results[i].Score = s.Score(results[i])
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score < results[j].Score
		}
		return results[i].OptionIndex < results[j].OptionIndex
	})
}
