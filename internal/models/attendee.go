package models

// TravelClass is the cabin class an attendee books in.
type TravelClass string

const (
	ClassEconomy        TravelClass = "economy"
	ClassPremiumEconomy TravelClass = "premium_economy"
	ClassBusiness       TravelClass = "business"
	ClassFirst          TravelClass = "first"
)

// Multiplier returns the fare multiplier relative to economy.
func (tc TravelClass) Multiplier() float64 {
	switch tc {
	case ClassPremiumEconomy:
		return 1.5
	case ClassBusiness:
		return 3.0
	case ClassFirst:
		return 5.0
	default:
		return 1.0
	}
}

// Attendee is one traveller in the group. Immutable for the duration of a
// simulation run.
type Attendee struct {
	ID          string      `json:"id"`
	EmployeeID  string      `json:"employee_id"`
	Name        string      `json:"name"`
	HomeAirport string      `json:"home_airport"`
	TravelClass TravelClass `json:"travel_class"`
	// MaxConnections caps how many stops the attendee accepts. Nil means
	// no constraint.
	MaxConnections *int `json:"max_connections,omitempty"`
}
