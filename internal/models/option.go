package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Option is one (location, date window) candidate being compared.
// Identified by Key(); unique within one simulation.
type Option struct {
	Location     string     `json:"location"`
	Window       DateWindow `json:"date_window"`
	DurationDays int        `json:"duration_days"`
}

// Key identifies the option within a simulation run.
func (o Option) Key() string {
	return fmt.Sprintf("%s|%s|%s", o.Location, o.Window.Start.Format(dateLayout), o.Window.End.Format(dateLayout))
}

// DepartDate is the outbound date: the start of the window.
func (o Option) DepartDate() time.Time {
	return o.Window.Start
}

// ReturnDate is the start of the window plus the trip duration.
func (o Option) ReturnDate() time.Time {
	return o.Window.Start.AddDate(0, 0, o.DurationDays)
}
