package factories

import (
	"time"

	"github.com/lucsky/cuid"

	"github.com/offsiteio/tripsim/internal/models"
)

// Candidate destinations for demo events.
var candidateLocations = []string{"LIS", "MUC", "BCN", "AMS"}

type EventFactory struct{}

// CreateEvent generates a demo event: a handful of European destinations
// and two candidate weeks starting a quarter out.
func (ef *EventFactory) CreateEvent() models.Event {
	base := time.Now().AddDate(0, 3, 0).Truncate(24 * time.Hour)
	return models.Event{
		ID:                 cuid.New(),
		Name:               fake.Company().Name() + " Offsite",
		CandidateLocations: append([]string{}, candidateLocations...),
		CandidateDateWindows: []models.DateWindow{
			{Start: base, End: base.AddDate(0, 0, 4)},
			{Start: base.AddDate(0, 0, 14), End: base.AddDate(0, 0, 18)},
		},
		DurationDays: 3,
	}
}
