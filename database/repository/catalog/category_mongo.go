package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"servify/database"
	"servify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCategoryRepo is the MongoDB-backed CategoryRepository.
type MongoCategoryRepo struct {
	coll *mongo.Collection
}

func NewMongoCategoryRepo() *MongoCategoryRepo {
	return &MongoCategoryRepo{coll: database.Collection("categories")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCategoryRepo) GetByID(id string) (*models.Category, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var category models.Category
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("category with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch category with id %s: %w", id, err)
	}
	return &category, nil
}

func (r *MongoCategoryRepo) GetAll() ([]models.Category, error) {
	return r.find(bson.M{})
}

func (r *MongoCategoryRepo) GetActive() ([]models.Category, error) {
	return r.find(bson.M{"is_active": true})
}

func (r *MongoCategoryRepo) find(filter bson.M) ([]models.Category, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *MongoCategoryRepo) Create(category *models.Category) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *MongoCategoryRepo) Update(category *models.Category) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": category.ID}, bson.M{"$set": category})
	if err != nil {
		return fmt.Errorf("failed to update category with id %s: %w", category.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("category with id %s not found", category.ID)
	}
	return nil
}

func (r *MongoCategoryRepo) SetActive(id string, active bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return fmt.Errorf("failed to update category with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("category with id %s not found", id)
	}
	return nil
}
