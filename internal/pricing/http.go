package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/offsiteio/tripsim/internal/models"
)

// HTTPProvider queries a network-backed pricing service. Every failure
// mode (transport error, non-200 status, malformed body, timeout) is
// surfaced as ErrQuoteUnavailable so the cache's fallback path triggers
// uniformly regardless of provider.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Name() string { return "http" }

type quoteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"depart_date"`
	ReturnDate  string `json:"return_date"`
	TravelClass string `json:"travel_class"`
}

type quoteResponse struct {
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Airline       string  `json:"airline"`
	Stops         int     `json:"stops"`
	DepartMinutes int     `json:"depart_minutes"`
	TravelMinutes int     `json:"travel_minutes"`
	BookingLink   string  `json:"booking_link"`
}

func (p *HTTPProvider) Quote(ctx context.Context, key models.PriceQuoteKey) (models.PriceQuote, error) {
	body, err := json.Marshal(quoteRequest{
		Origin:      key.Origin,
		Destination: key.Destination,
		DepartDate:  key.DepartDate.Format("2006-01-02"),
		ReturnDate:  key.ReturnDate.Format("2006-01-02"),
		TravelClass: string(key.TravelClass),
	})
	if err != nil {
		return models.PriceQuote{}, fmt.Errorf("%w: encode request: %v", ErrQuoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/quotes", bytes.NewReader(body))
	if err != nil {
		return models.PriceQuote{}, fmt.Errorf("%w: build request: %v", ErrQuoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.PriceQuote{}, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.PriceQuote{}, fmt.Errorf("%w: unexpected status %d", ErrQuoteUnavailable, resp.StatusCode)
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.PriceQuote{}, fmt.Errorf("%w: decode response: %v", ErrQuoteUnavailable, err)
	}
	if decoded.Price <= 0 || decoded.TravelMinutes <= 0 {
		return models.PriceQuote{}, fmt.Errorf("%w: malformed quote (price=%v, travel_minutes=%d)",
			ErrQuoteUnavailable, decoded.Price, decoded.TravelMinutes)
	}

	currency := decoded.Currency
	if currency == "" {
		currency = "USD"
	}

	return models.PriceQuote{
		Origin:        key.Origin,
		Destination:   key.Destination,
		DepartDate:    key.DepartDate,
		ReturnDate:    key.ReturnDate,
		TravelClass:   key.TravelClass,
		Airline:       decoded.Airline,
		Stops:         decoded.Stops,
		Price:         decoded.Price,
		Currency:      currency,
		DepartMinutes: decoded.DepartMinutes,
		ArriveMinutes: (decoded.DepartMinutes + decoded.TravelMinutes) % (24 * 60),
		TravelMinutes: decoded.TravelMinutes,
		BookingLink:   decoded.BookingLink,
	}, nil
}
