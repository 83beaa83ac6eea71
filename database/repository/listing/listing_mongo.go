// File: database/repository/listing/listing_mongo.go
package listingRepo

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

func (r *mongoListingRepo) Create(ctx context.Context, l *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Status == "" {
		l.Status = models.ListingDraft
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func (r *mongoListingRepo) GetByID(ctx context.Context, agentID, listingID string) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var l models.Listing
	filter := bson.M{"id": listingID, "agentId": agentID}
	if err := r.coll.FindOne(ctx, filter).Decode(&l); err != nil {
		return nil, fmt.Errorf("error fetching listing %s: %w", listingID, err)
	}
	return &l, nil
}

func (r *mongoListingRepo) ListByAgent(ctx context.Context, agentID string) ([]models.Listing, error) {
	return r.find(ctx, bson.M{"agentId": agentID})
}

func (r *mongoListingRepo) ListActiveByAgent(ctx context.Context, agentID string) ([]models.Listing, error) {
	return r.find(ctx, bson.M{"agentId": agentID, "status": models.ListingActive})
}

func (r *mongoListingRepo) find(ctx context.Context, filter bson.M) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("error decoding listings: %w", err)
	}
	return listings, nil
}

func (r *mongoListingRepo) CountActiveByAgent(ctx context.Context, agentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"agentId": agentID, "status": models.ListingActive})
	if err != nil {
		return 0, fmt.Errorf("error counting active listings: %w", err)
	}
	return count, nil
}

func (r *mongoListingRepo) UpdateFields(ctx context.Context, agentID, listingID string, fields map[string]interface{}) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	filter := bson.M{"id": listingID, "agentId": agentID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var l models.Listing
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return &l, nil
}

func (r *mongoListingRepo) Delete(ctx context.Context, agentID, listingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": listingID, "agentId": agentID})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoListingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "agentId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
