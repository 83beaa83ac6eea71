// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"agentlinker/database"
	"agentlinker/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the persistence boundary for showings.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, agentID, bookingID string) (*models.Booking, error)
	// FindForAgentWindow returns every non-cancelled booking whose span
	// intersects [from, to), sorted by start time.
	FindForAgentWindow(ctx context.Context, agentID string, from, to time.Time) ([]models.Booking, error)
	ListByAgent(ctx context.Context, agentID string, limit int64) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, agentID, bookingID, status string) (*models.Booking, error)
	Delete(ctx context.Context, agentID, bookingID string) error
	// CountOverlapping counts non-cancelled bookings overlapping [start, end).
	CountOverlapping(ctx context.Context, agentID string, start, end time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.Collection("bookings"),
	}
}
