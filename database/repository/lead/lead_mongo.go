// File: database/repository/lead/lead_mongo.go
package leadRepo

import (
	"context"
	"fmt"
	"time"

	"agentlinker/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoLeadRepo) Create(ctx context.Context, l *models.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Status == "" {
		l.Status = models.LeadNew
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (r *mongoLeadRepo) GetByID(ctx context.Context, agentID, leadID string) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var l models.Lead
	filter := bson.M{"id": leadID, "agentId": agentID}
	if err := r.coll.FindOne(ctx, filter).Decode(&l); err != nil {
		return nil, fmt.Errorf("error fetching lead %s: %w", leadID, err)
	}
	return &l, nil
}

func (r *mongoLeadRepo) ListByAgent(ctx context.Context, agentID string) ([]models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"agentId": agentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("error decoding leads: %w", err)
	}
	return leads, nil
}

func (r *mongoLeadRepo) UpdateStatus(ctx context.Context, agentID, leadID, status string) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": leadID, "agentId": agentID}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var l models.Lead
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	return &l, nil
}

func (r *mongoLeadRepo) Delete(ctx context.Context, agentID, leadID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": leadID, "agentId": agentID})
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoLeadRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "agentId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
