package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offsiteio/tripsim/internal/models"
)

// QuoteStore is the durable cache tier backed by the price_cache table.
// Survives process restarts; housekeeping happens through EvictBefore.
type QuoteStore struct {
	pool *pgxpool.Pool
}

func NewQuoteStore(pool *pgxpool.Pool) *QuoteStore {
	return &QuoteStore{pool: pool}
}

func (s *QuoteStore) Get(ctx context.Context, key string) (models.PriceQuote, bool, error) {
	query := `
        SELECT origin, destination, depart_date, return_date, travel_class,
               airline, stops, price, currency, depart_minutes, arrive_minutes,
               travel_minutes, booking_link
        FROM price_cache
        WHERE cache_key = $1`

	var quote models.PriceQuote
	var travelClass string
	err := s.pool.QueryRow(ctx, query, key).Scan(
		&quote.Origin,
		&quote.Destination,
		&quote.DepartDate,
		&quote.ReturnDate,
		&travelClass,
		&quote.Airline,
		&quote.Stops,
		&quote.Price,
		&quote.Currency,
		&quote.DepartMinutes,
		&quote.ArriveMinutes,
		&quote.TravelMinutes,
		&quote.BookingLink,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PriceQuote{}, false, nil
	}
	if err != nil {
		return models.PriceQuote{}, false, err
	}
	quote.TravelClass = models.TravelClass(travelClass)
	return quote, true, nil
}

func (s *QuoteStore) Put(ctx context.Context, key string, quote models.PriceQuote) error {
	query := `
        INSERT INTO price_cache (
            cache_key, origin, destination, depart_date, return_date,
            travel_class, airline, stops, price, currency, depart_minutes,
            arrive_minutes, travel_minutes, booking_link, cached_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
        )
        ON CONFLICT (cache_key) DO UPDATE SET
            airline = EXCLUDED.airline,
            stops = EXCLUDED.stops,
            price = EXCLUDED.price,
            currency = EXCLUDED.currency,
            depart_minutes = EXCLUDED.depart_minutes,
            arrive_minutes = EXCLUDED.arrive_minutes,
            travel_minutes = EXCLUDED.travel_minutes,
            booking_link = EXCLUDED.booking_link,
            cached_at = EXCLUDED.cached_at`

	_, err := s.pool.Exec(ctx, query,
		key,
		quote.Origin,
		quote.Destination,
		quote.DepartDate,
		quote.ReturnDate,
		string(quote.TravelClass),
		quote.Airline,
		quote.Stops,
		quote.Price,
		quote.Currency,
		quote.DepartMinutes,
		quote.ArriveMinutes,
		quote.TravelMinutes,
		quote.BookingLink,
		time.Now().UTC(),
	)
	return err
}

func (s *QuoteStore) EvictBefore(ctx context.Context, cutoff time.Time) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM price_cache WHERE cached_at < $1", cutoff)
	return err
}

func (s *QuoteStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "TRUNCATE TABLE price_cache")
	return err
}
