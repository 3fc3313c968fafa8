// Package export renders simulation results for downstream consumers:
// finance CSV summaries and parquet analytics files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/offsiteio/tripsim/internal/models"
)

var financeHeader = []string{
	"run_id", "event_id", "rank", "location", "window_start", "window_end",
	"attendee_id", "employee_id", "origin", "airline", "travel_class",
	"stops", "travel_minutes", "price", "currency", "booking_link",
}

// WriteFinanceCSV writes one row per (ranked option, attendee itinerary).
func WriteFinanceCSV(w io.Writer, result *models.SimulationResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(financeHeader); err != nil {
		return err
	}

	for rank, optionResult := range result.Results {
		for _, itinerary := range optionResult.Itineraries {
			row := []string{
				result.RunID,
				result.EventID,
				fmt.Sprintf("%d", rank+1),
				optionResult.Option.Location,
				optionResult.Option.Window.Start.Format("2006-01-02"),
				optionResult.Option.Window.End.Format("2006-01-02"),
				itinerary.AttendeeID,
				itinerary.EmployeeID,
				itinerary.Quote.Origin,
				itinerary.Quote.Airline,
				string(itinerary.Quote.TravelClass),
				fmt.Sprintf("%d", itinerary.Quote.Stops),
				fmt.Sprintf("%d", itinerary.TravelMinutes),
				fmt.Sprintf("%.2f", itinerary.Quote.Price),
				itinerary.Quote.Currency,
				itinerary.Quote.BookingLink,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFinanceCSVFile writes the finance export to path, creating parent
// directories as needed.
func WriteFinanceCSVFile(path string, result *models.SimulationResult) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFinanceCSV(file, result)
}
