package models

import "time"

// Itinerary is one attendee's resolved travel plan for one Option.
type Itinerary struct {
	AttendeeID     string     `json:"attendee_id"`
	EmployeeID     string     `json:"employee_id"`
	Quote          PriceQuote `json:"quote"`
	ArrivalMinutes int        `json:"arrival_minutes"` // minutes since midnight on arrival day
	TravelMinutes  int        `json:"travel_minutes"`
}

// OptionResult is one Option plus its itineraries and aggregated metrics.
//
// Invariants: ConnectionsRate in [0,1]; ArrivalSpreadMinutes >= 0;
// TotalCost is the sum of all itinerary quote prices.
type OptionResult struct {
	Option               Option      `json:"option"`
	OptionIndex          int         `json:"option_index"` // enumeration order, tiebreak for equal scores
	Itineraries          []Itinerary `json:"itineraries"`
	TotalCost            float64     `json:"total_cost"`
	AvgTravelTimeMinutes float64     `json:"avg_travel_time_minutes"`
	ArrivalSpreadMinutes float64     `json:"arrival_spread_minutes"`
	ConnectionsRate      float64     `json:"connections_rate"`
	Score                float64     `json:"score"`
}

// SimulationResult is the ranked outcome of one simulation run.
type SimulationResult struct {
	RunID           string         `json:"run_id"`
	EventID         string         `json:"event_id"`
	Version         int            `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
	Results         []OptionResult `json:"results"`        // ascending by score, lower is better
	RankedOptions   []int          `json:"ranked_options"` // enumeration indices in rank order
	ExcludedOptions int            `json:"excluded_options"`
}
