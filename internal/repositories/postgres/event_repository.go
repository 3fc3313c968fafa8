package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offsiteio/tripsim/internal/models"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	windows, err := json.Marshal(event.CandidateDateWindows)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO events (
            id, name, candidate_locations, candidate_date_windows, duration_days
        ) VALUES ($1, $2, $3, $4, $5)`

	_, err = r.pool.Exec(ctx, query,
		event.ID,
		event.Name,
		event.CandidateLocations,
		windows,
		event.DurationDays,
	)
	return err
}

func (r *EventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	query := `
        SELECT id, name, candidate_locations, candidate_date_windows, duration_days
        FROM events
        WHERE id = $1`

	event := &models.Event{}
	var windows []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.CandidateLocations,
		&windows,
		&event.DurationDays,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(windows, &event.CandidateDateWindows); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE events CASCADE")
	return err
}
