package repository

import (
	"context"
	"time"

	"jewelry-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DiamondRepository interface {
	FindByStockNumber(ctx context.Context, stockNumber string) (*models.Diamond, error)
	Search(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Diamond, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Create(ctx context.Context, diamond *models.Diamond) error
	Update(ctx context.Context, stockNumber string, updates bson.M) (int64, error)
	Delete(ctx context.Context, stockNumber string) (int64, error)
}

type MongoDiamondRepository struct {
	collection *mongo.Collection
}

func NewDiamondRepository(db *mongo.Database) *MongoDiamondRepository {
	return &MongoDiamondRepository{collection: db.Collection("diamonds")}
}

func (r *MongoDiamondRepository) FindByStockNumber(ctx context.Context, stockNumber string) (*models.Diamond, error) {
	var diamond models.Diamond
	if err := r.collection.FindOne(ctx, bson.M{"stock_number": stockNumber}).Decode(&diamond); err != nil {
		return nil, err
	}
	return &diamond, nil
}

func (r *MongoDiamondRepository) Search(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Diamond, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var diamonds []*models.Diamond
	if err = cursor.All(ctx, &diamonds); err != nil {
		return nil, err
	}
	return diamonds, nil
}

func (r *MongoDiamondRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoDiamondRepository) Create(ctx context.Context, diamond *models.Diamond) error {
	if diamond.ID.IsZero() {
		diamond.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	diamond.CreatedAt = now
	diamond.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, diamond)
	return err
}

func (r *MongoDiamondRepository) Update(ctx context.Context, stockNumber string, updates bson.M) (int64, error) {
	delete(updates, "_id")
	delete(updates, "stock_number")
	updates["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"stock_number": stockNumber}, bson.M{"$set": updates})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *MongoDiamondRepository) Delete(ctx context.Context, stockNumber string) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"stock_number": stockNumber})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
