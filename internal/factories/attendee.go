package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/offsiteio/tripsim/internal/models"
)

var fake = faker.New()

// Home airports demo attendees are drawn from.
var homeAirports = []string{"JFK", "LAX", "ORD", "SFO", "BOS", "SEA", "ATL", "DEN", "LHR", "CDG"}

var travelClasses = []models.TravelClass{
	models.ClassEconomy,
	models.ClassEconomy,
	models.ClassEconomy,
	models.ClassPremiumEconomy,
	models.ClassBusiness,
}

type AttendeeFactory struct{}

// CreateAttendee generates one demo attendee with a random home airport
// and a class preference skewed towards economy.
func (af *AttendeeFactory) CreateAttendee() models.Attendee {
	attendee := models.Attendee{
		ID:          cuid.New(),
		EmployeeID:  fake.Numerify("EMP-#####"),
		Name:        fake.Person().Name(),
		HomeAirport: homeAirports[rand.Intn(len(homeAirports))],
		TravelClass: travelClasses[rand.Intn(len(travelClasses))],
	}
	if rand.Float64() < 0.2 {
		maxConnections := rand.Intn(2) + 1
		attendee.MaxConnections = &maxConnections
	}
	return attendee
}

// CreateAttendees generates n demo attendees.
func (af *AttendeeFactory) CreateAttendees(n int) []models.Attendee {
	attendees := make([]models.Attendee, n)
	for i := range attendees {
		attendees[i] = af.CreateAttendee()
	}
	return attendees
}
