// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"agentlinker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches non-cancelled bookings whose [scheduledAt,
// scheduledAt+duration) span intersects [start, end). The end bound of each
// stored booking is derived in the filter since only the start instant and
// the duration are persisted.
func overlapFilter(agentID string, start, end time.Time) bson.M {
	return bson.M{
		"agentId":     agentID,
		"status":      bson.M{"$ne": models.BookingCancelled},
		"scheduledAt": bson.M{"$lt": end},
		"$expr": bson.M{"$gt": bson.A{
			bson.M{"$add": bson.A{
				"$scheduledAt",
				bson.M{"$multiply": bson.A{"$durationMinutes", 60 * 1000}},
			}},
			start,
		}},
	}
}

func (r *mongoBookingRepo) FindForAgentWindow(ctx context.Context, agentID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, overlapFilter(agentID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for window: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for window: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) CountOverlapping(ctx context.Context, agentID string, start, end time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, overlapFilter(agentID, start, end))
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}
