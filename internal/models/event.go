package models

import "time"

// DateWindow is a candidate start/end range for the trip.
type DateWindow struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Event describes the group trip being planned: who could host it where,
// and when.
type Event struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	CandidateLocations   []string     `json:"candidate_locations"`
	CandidateDateWindows []DateWindow `json:"candidate_date_windows"`
	DurationDays         int          `json:"duration_days"`
}
