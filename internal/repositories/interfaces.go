package repositories

import (
	"context"

	"github.com/offsiteio/tripsim/internal/models"
)

type AttendeeRepository interface {
	BulkCreate(ctx context.Context, eventID string, attendees []models.Attendee) error
	GetByEvent(ctx context.Context, eventID string) ([]models.Attendee, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Get(ctx context.Context, id string) (*models.Event, error)
	DeleteAll(ctx context.Context) error
}

type ResultRepository interface {
	Save(ctx context.Context, result *models.SimulationResult) error
	GetLatest(ctx context.Context, eventID string) (*models.SimulationResult, error)
	DeleteAll(ctx context.Context) error
}
