package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offsiteio/tripsim/internal/models"
)

func sampleResult() *models.SimulationResult {
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	option := models.Option{
		Location:     "LIS",
		Window:       models.DateWindow{Start: start, End: start.AddDate(0, 0, 3)},
		DurationDays: 3,
	}
	return &models.SimulationResult{
		RunID:   "run_abc",
		EventID: "evt_offsite",
		Results: []models.OptionResult{
			{
				Option: option,
				Itineraries: []models.Itinerary{
					{
						AttendeeID: "att_1",
						EmployeeID: "EMP-00001",
						Quote: models.PriceQuote{
							Origin: "JFK", Airline: "TP", TravelClass: models.ClassEconomy,
							Stops: 1, Price: 640.5, Currency: "USD",
							BookingLink: "https://booking.example/JFK-LIS",
						},
						TravelMinutes: 420,
					},
				},
			},
		},
	}
}

func TestWriteFinanceCSV_OneRowPerItinerary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFinanceCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, financeHeader, records[0])
	row := records[1]
	assert.Equal(t, "run_abc", row[0])
	assert.Equal(t, "1", row[2], "rank is 1-based")
	assert.Equal(t, "LIS", row[3])
	assert.Equal(t, "2026-09-14", row[4])
	assert.Equal(t, "EMP-00001", row[7])
	assert.Equal(t, "640.50", row[13])
	assert.Equal(t, "https://booking.example/JFK-LIS", row[15])
}

func TestWriteFinanceCSV_EmptyResults_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFinanceCSV(&buf, &models.SimulationResult{RunID: "run_x"}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
