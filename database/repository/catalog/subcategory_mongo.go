package catalogRepo

import (
	"fmt"
	"time"

	"servify/database"
	"servify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSubcategoryRepo is the MongoDB-backed SubcategoryRepository.
type MongoSubcategoryRepo struct {
	coll *mongo.Collection
}

func NewMongoSubcategoryRepo() *MongoSubcategoryRepo {
	return &MongoSubcategoryRepo{coll: database.Collection("subcategories")}
}

func (r *MongoSubcategoryRepo) GetByID(id string) (*models.Subcategory, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var subcategory models.Subcategory
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&subcategory); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("subcategory with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch subcategory with id %s: %w", id, err)
	}
	return &subcategory, nil
}

func (r *MongoSubcategoryRepo) GetActiveByCategory(categoryID string) ([]models.Subcategory, error) {
	return r.find(bson.M{"category_id": categoryID, "is_active": true})
}

func (r *MongoSubcategoryRepo) GetByCategory(categoryID string) ([]models.Subcategory, error) {
	return r.find(bson.M{"category_id": categoryID})
}

func (r *MongoSubcategoryRepo) find(filter bson.M) ([]models.Subcategory, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	var subcategories []models.Subcategory
	if err := cursor.All(ctx, &subcategories); err != nil {
		return nil, fmt.Errorf("failed to decode subcategories: %w", err)
	}
	return subcategories, nil
}

func (r *MongoSubcategoryRepo) Create(subcategory *models.Subcategory) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, subcategory); err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

func (r *MongoSubcategoryRepo) Update(subcategory *models.Subcategory) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": subcategory.ID}, bson.M{"$set": subcategory})
	if err != nil {
		return fmt.Errorf("failed to update subcategory with id %s: %w", subcategory.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("subcategory with id %s not found", subcategory.ID)
	}
	return nil
}

func (r *MongoSubcategoryRepo) SetActive(id string, active bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return fmt.Errorf("failed to update subcategory with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("subcategory with id %s not found", id)
	}
	return nil
}
