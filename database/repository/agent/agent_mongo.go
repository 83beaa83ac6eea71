// File: database/repository/agent/agent_mongo.go
package agentRepo

import (
	"context"
	"fmt"
	"time"

	"agentlinker/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoAgentRepo) Create(ctx context.Context, a *models.Agent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Tier == "" {
		a.Tier = models.TierFree
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("agent with that email or slug already exists: %w", err)
		}
		return fmt.Errorf("failed to insert agent: %w", err)
	}
	return nil
}

func (r *mongoAgentRepo) GetByID(ctx context.Context, agentID string) (*models.Agent, error) {
	return r.findOne(ctx, bson.M{"id": agentID})
}

func (r *mongoAgentRepo) GetByEmail(ctx context.Context, email string) (*models.Agent, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoAgentRepo) GetBySlug(ctx context.Context, slug string) (*models.Agent, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *mongoAgentRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Agent, error) {
	return r.findOne(ctx, bson.M{"stripeCustomerId": customerID})
}

func (r *mongoAgentRepo) findOne(ctx context.Context, filter bson.M) (*models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Agent
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, fmt.Errorf("error fetching agent: %w", err)
	}
	return &a, nil
}

func (r *mongoAgentRepo) UpdateFields(ctx context.Context, agentID string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": agentID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update agent: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
