package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/offsiteio/tripsim/internal/models"
)

func TestScore_WeightedSum(t *testing.T) {
	scorer := NewScorer(models.ScoreWeights{Cost: 1, Spread: 5, TravelTime: 2, Connections: 500})
	result := models.OptionResult{
		TotalCost:            1000,
		ArrivalSpreadMinutes: 120,
		AvgTravelTimeMinutes: 400,
		ConnectionsRate:      0.5,
	}

	assert.Equal(t, 1000.0+600.0+800.0+250.0, scorer.Score(result))
}

func TestScore_MoreConnections_StrictlyWorse(t *testing.T) {
	scorer := NewScorer(models.DefaultConfig().Weights)
	direct := models.OptionResult{TotalCost: 1000, ArrivalSpreadMinutes: 60, AvgTravelTimeMinutes: 300}
	connecting := direct
	connecting.ConnectionsRate = 1

	assert.Greater(t, scorer.Score(connecting), scorer.Score(direct))
	assert.InDelta(t, 500, scorer.Score(connecting)-scorer.Score(direct), 0.001)
}

func TestRank_AscendingByScore(t *testing.T) {
	scorer := NewScorer(models.DefaultConfig().Weights)
	results := []models.OptionResult{
		{OptionIndex: 0, TotalCost: 3000},
		{OptionIndex: 1, TotalCost: 1000},
		{OptionIndex: 2, TotalCost: 2000},
	}

	scorer.Rank(results)

	assert.Equal(t, []int{1, 2, 0}, []int{results[0].OptionIndex, results[1].OptionIndex, results[2].OptionIndex})
	assert.LessOrEqual(t, results[0].Score, results[1].Score)
	assert.LessOrEqual(t, results[1].Score, results[2].Score)
}

func TestRank_TiedScores_KeepEnumerationOrder(t *testing.T) {
	scorer := NewScorer(models.DefaultConfig().Weights)
	results := []models.OptionResult{
		{OptionIndex: 2, TotalCost: 1000},
		{OptionIndex: 0, TotalCost: 1000},
		{OptionIndex: 1, TotalCost: 1000},
	}

	scorer.Rank(results)

	assert.Equal(t, 0, results[0].OptionIndex)
	assert.Equal(t, 1, results[1].OptionIndex)
	assert.Equal(t, 2, results[2].OptionIndex)
}
