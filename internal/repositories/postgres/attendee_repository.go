package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offsiteio/tripsim/internal/models"
)

type AttendeeRepository struct {
	pool *pgxpool.Pool
}

func NewAttendeeRepository(pool *pgxpool.Pool) *AttendeeRepository {
	return &AttendeeRepository{pool: pool}
}

func (r *AttendeeRepository) BulkCreate(ctx context.Context, eventID string, attendees []models.Attendee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO attendees (
            id, employee_id, name, home_airport, travel_class, max_connections
        ) VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO NOTHING`

	linkStmt := `
        INSERT INTO event_attendees (event_id, attendee_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`

	for _, attendee := range attendees {
		_, err = tx.Exec(ctx, stmt,
			attendee.ID,
			attendee.EmployeeID,
			attendee.Name,
			attendee.HomeAirport,
			string(attendee.TravelClass),
			attendee.MaxConnections,
		)
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, linkStmt, eventID, attendee.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *AttendeeRepository) GetByEvent(ctx context.Context, eventID string) ([]models.Attendee, error) {
	query := `
        SELECT a.id, a.employee_id, a.name, a.home_airport, a.travel_class, a.max_connections
        FROM attendees a
        JOIN event_attendees ea ON ea.attendee_id = a.id
        WHERE ea.event_id = $1
        ORDER BY a.id`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var attendee models.Attendee
		var travelClass string
		err := rows.Scan(
			&attendee.ID,
			&attendee.EmployeeID,
			&attendee.Name,
			&attendee.HomeAirport,
			&travelClass,
			&attendee.MaxConnections,
		)
		if err != nil {
			return nil, err
		}
		attendee.TravelClass = models.TravelClass(travelClass)
		attendees = append(attendees, attendee)
	}
	return attendees, rows.Err()
}

func (r *AttendeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM attendees").Scan(&count)
	return count, err
}

func (r *AttendeeRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE attendees CASCADE")
	return err
}
