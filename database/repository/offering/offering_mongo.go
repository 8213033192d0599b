package offeringRepo

import (
	"context"
	"fmt"
	"time"

	"servify/database"
	"servify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOfferingRepo is the MongoDB-backed OfferingRepository.
type MongoOfferingRepo struct {
	coll *mongo.Collection
}

func NewMongoOfferingRepo() *MongoOfferingRepo {
	return &MongoOfferingRepo{coll: database.Collection("provider_services")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOfferingRepo) GetByID(id string) (*models.ProviderService, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var offering models.ProviderService
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&offering); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("offering with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch offering with id %s: %w", id, err)
	}
	return &offering, nil
}

func (r *MongoOfferingRepo) GetByProvider(providerID string) ([]models.ProviderService, error) {
	return r.find(bson.M{"provider_id": providerID})
}

func (r *MongoOfferingRepo) GetApprovedBySubcategory(subcategoryID string) ([]models.ProviderService, error) {
	return r.find(bson.M{
		"subcategory_id": subcategoryID,
		"status":         models.OfferingStatusApproved,
		"is_active":      true,
	})
}

func (r *MongoOfferingRepo) GetByStatus(status string) ([]models.ProviderService, error) {
	return r.find(bson.M{"status": status})
}

func (r *MongoOfferingRepo) find(filter bson.M) ([]models.ProviderService, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query offerings: %w", err)
	}
	var offerings []models.ProviderService
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, fmt.Errorf("failed to decode offerings: %w", err)
	}
	return offerings, nil
}

func (r *MongoOfferingRepo) Create(offering *models.ProviderService) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, offering); err != nil {
		return fmt.Errorf("failed to create offering: %w", err)
	}
	return nil
}

func (r *MongoOfferingRepo) Update(offering *models.ProviderService) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": offering.ID}, bson.M{"$set": offering})
	if err != nil {
		return fmt.Errorf("failed to update offering with id %s: %w", offering.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("offering with id %s not found", offering.ID)
	}
	return nil
}

func (r *MongoOfferingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete offering with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("offering with id %s not found", id)
	}
	return nil
}
