// File: database/repository/lead/interface.go
package leadRepo

import (
	"context"

	"agentlinker/database"
	"agentlinker/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LeadRepository is the persistence boundary for leads.
type LeadRepository interface {
	Create(ctx context.Context, l *models.Lead) error
	GetByID(ctx context.Context, agentID, leadID string) (*models.Lead, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, agentID, leadID, status string) (*models.Lead, error)
	Delete(ctx context.Context, agentID, leadID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoLeadRepo struct {
	coll *mongo.Collection
}

// NewMongoLeadRepo constructs a new MongoDB LeadRepository.
func NewMongoLeadRepo() LeadRepository {
	return &mongoLeadRepo{
		coll: database.Collection("leads"),
	}
}
