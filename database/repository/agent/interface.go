// File: database/repository/agent/interface.go
package agentRepo

import (
	"context"

	"agentlinker/database"
	"agentlinker/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AgentRepository is the persistence boundary for agent accounts.
type AgentRepository interface {
	Create(ctx context.Context, a *models.Agent) error
	GetByID(ctx context.Context, agentID string) (*models.Agent, error)
	GetByEmail(ctx context.Context, email string) (*models.Agent, error)
	GetBySlug(ctx context.Context, slug string) (*models.Agent, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Agent, error)
	UpdateFields(ctx context.Context, agentID string, fields map[string]interface{}) error
	EnsureIndexes(ctx context.Context) error
}

type mongoAgentRepo struct {
	coll *mongo.Collection
}

// NewMongoAgentRepo constructs a new MongoDB AgentRepository.
func NewMongoAgentRepo() AgentRepository {
	return &mongoAgentRepo{
		coll: database.Collection("agents"),
	}
}
