// File: database/repository/listing/interface.go
package listingRepo

import (
	"context"

	"agentlinker/database"
	"agentlinker/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ListingRepository is the persistence boundary for listings.
type ListingRepository interface {
	Create(ctx context.Context, l *models.Listing) error
	GetByID(ctx context.Context, agentID, listingID string) (*models.Listing, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.Listing, error)
	ListActiveByAgent(ctx context.Context, agentID string) ([]models.Listing, error)
	CountActiveByAgent(ctx context.Context, agentID string) (int64, error)
	UpdateFields(ctx context.Context, agentID, listingID string, fields map[string]interface{}) (*models.Listing, error)
	Delete(ctx context.Context, agentID, listingID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo constructs a new MongoDB ListingRepository.
func NewMongoListingRepo() ListingRepository {
	return &mongoListingRepo{
		coll: database.Collection("listings"),
	}
}
