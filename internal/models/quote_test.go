package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPriceQuoteKey_Canonicalizes(t *testing.T) {
	depart := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	ret := depart.AddDate(0, 0, 3)

	key := NewPriceQuoteKey(" jfk ", "lis", depart, ret, "BUSINESS")

	assert.Equal(t, "JFK", key.Origin)
	assert.Equal(t, "LIS", key.Destination)
	assert.Equal(t, ClassBusiness, key.TravelClass)
	assert.Equal(t, "JFK:LIS:2026-09-14:2026-09-17:business", key.String())
}

func TestNewPriceQuoteKey_EmptyClassDefaultsEconomy(t *testing.T) {
	depart := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	key := NewPriceQuoteKey("JFK", "LIS", depart, depart.AddDate(0, 0, 3), "")

	assert.Equal(t, ClassEconomy, key.TravelClass)
}

func TestPriceQuoteKey_EquivalentInputsShareString(t *testing.T) {
	depart := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	ret := depart.AddDate(0, 0, 3)

	a := NewPriceQuoteKey("jfk", "LIS ", depart, ret, "Economy")
	b := NewPriceQuoteKey("JFK", "lis", depart, ret, ClassEconomy)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a, b)
}

func TestTravelClass_Multiplier(t *testing.T) {
	assert.Equal(t, 1.0, ClassEconomy.Multiplier())
	assert.Equal(t, 1.5, ClassPremiumEconomy.Multiplier())
	assert.Equal(t, 3.0, ClassBusiness.Multiplier())
	assert.Equal(t, 5.0, ClassFirst.Multiplier())
	assert.Equal(t, 1.0, TravelClass("unknown").Multiplier())
}
