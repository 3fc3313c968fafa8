package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offsiteio/tripsim/internal/models"
)

type ResultRepository struct {
	pool *pgxpool.Pool
}

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func (r *ResultRepository) Save(ctx context.Context, result *models.SimulationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO simulation_results (
            run_id, event_id, version, created_at, excluded_options, payload
        ) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		result.RunID,
		result.EventID,
		result.Version,
		result.CreatedAt,
		result.ExcludedOptions,
		payload,
	)
	return err
}

func (r *ResultRepository) GetLatest(ctx context.Context, eventID string) (*models.SimulationResult, error) {
	query := `
        SELECT payload
        FROM simulation_results
        WHERE event_id = $1
        ORDER BY created_at DESC
        LIMIT 1`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&payload); err != nil {
		return nil, err
	}

	result := &models.SimulationResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ResultRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE simulation_results")
	return err
}
