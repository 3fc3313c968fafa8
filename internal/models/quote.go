package models

import (
	"fmt"
	"strings"
	"time"
)

// PriceQuoteKey is the canonical cache key for one priced route. Airports
// are upper-cased, the travel class lower-cased and dates rendered as
// 2006-01-02, so logically identical requests always hash identically.
type PriceQuoteKey struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	DepartDate  time.Time   `json:"depart_date"`
	ReturnDate  time.Time   `json:"return_date"`
	TravelClass TravelClass `json:"travel_class"`
}

// NewPriceQuoteKey builds a canonical key. An empty travel class defaults
// to economy.
func NewPriceQuoteKey(origin, destination string, depart, ret time.Time, class TravelClass) PriceQuoteKey {
	if class == "" {
		class = ClassEconomy
	}
	return PriceQuoteKey{
		Origin:      strings.ToUpper(strings.TrimSpace(origin)),
		Destination: strings.ToUpper(strings.TrimSpace(destination)),
		DepartDate:  depart,
		ReturnDate:  ret,
		TravelClass: TravelClass(strings.ToLower(string(class))),
	}
}

// String renders the stable cache key. Field order is fixed.
func (k PriceQuoteKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s",
		k.Origin,
		k.Destination,
		k.DepartDate.Format(dateLayout),
		k.ReturnDate.Format(dateLayout),
		k.TravelClass,
	)
}

// PriceQuote is a priced flight result for one key. Immutable after
// creation; owned by the cache once stored.
type PriceQuote struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	DepartDate    time.Time   `json:"depart_date"`
	ReturnDate    time.Time   `json:"return_date"`
	TravelClass   TravelClass `json:"travel_class"`
	Airline       string      `json:"airline"`
	Stops         int         `json:"stops"`
	Price         float64     `json:"price"`
	Currency      string      `json:"currency"`
	DepartMinutes int         `json:"depart_minutes"` // minutes since midnight, local
	ArriveMinutes int         `json:"arrive_minutes"` // minutes since midnight at destination
	TravelMinutes int         `json:"travel_minutes"` // outbound leg duration
	BookingLink   string      `json:"booking_link,omitempty"`
}
