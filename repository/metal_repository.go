package repository

import (
	"context"
	"time"

	"jewelry-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MetalRepository interface {
	List(ctx context.Context) ([]*models.Metal, error)
	FindByType(ctx context.Context, metalType string) (*models.Metal, error)
	Upsert(ctx context.Context, metal *models.Metal) (created bool, err error)
	Delete(ctx context.Context, metalType string) (int64, error)
}

type MongoMetalRepository struct {
	collection *mongo.Collection
}

func NewMetalRepository(db *mongo.Database) *MongoMetalRepository {
	return &MongoMetalRepository{collection: db.Collection("metals")}
}

func (r *MongoMetalRepository) List(ctx context.Context) ([]*models.Metal, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "metal_type", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var metals []*models.Metal
	if err = cursor.All(ctx, &metals); err != nil {
		return nil, err
	}
	return metals, nil
}

func (r *MongoMetalRepository) FindByType(ctx context.Context, metalType string) (*models.Metal, error) {
	var metal models.Metal
	if err := r.collection.FindOne(ctx, bson.M{"metal_type": metalType}).Decode(&metal); err != nil {
		return nil, err
	}
	return &metal, nil
}

// Upsert writes rates by metal_type, the same natural key the importer uses.
func (r *MongoMetalRepository) Upsert(ctx context.Context, metal *models.Metal) (bool, error) {
	update := bson.M{"$set": bson.M{
		"metal_code":       metal.MetalCode,
		"rate_per_gram":    metal.RatePerGram,
		"price_multiplier": metal.PriceMultiplier,
		"active":           metal.Active,
		"updated_at":       time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"metal_type": metal.MetalType}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (r *MongoMetalRepository) Delete(ctx context.Context, metalType string) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"metal_type": metalType})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
