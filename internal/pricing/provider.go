// Package pricing implements the quote providers the simulation engine
// prices itineraries with.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/offsiteio/tripsim/internal/models"
)

// ErrQuoteUnavailable marks a single provider call that could not produce
// a quote (network error, timeout, malformed response). The cache retries
// against the fallback provider when it sees this.
var ErrQuoteUnavailable = errors.New("quote unavailable")

// Provider prices one origin/destination/date/class combination.
type Provider interface {
	Name() string
	Quote(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error)
}

// QuoteFunc adapts a bare function to the Provider interface; handy for
// test stubs.
type QuoteFunc func(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error)

func (f QuoteFunc) Name() string { return "func" }

func (f QuoteFunc) Quote(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
	return f(ctx, key)
}

// FromConfig selects the active provider variant at construction time.
func FromConfig(selector string, cfg *models.Config) (Provider, error) {
	switch selector {
	case models.ProviderMock:
		return NewMockProvider(cfg.PriceVolatility), nil
	case models.ProviderHTTP:
		return NewHTTPProvider(cfg.PricingBaseURL, cfg.ProviderTimeout), nil
	case models.ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown pricing provider %q", selector)
	}
}
