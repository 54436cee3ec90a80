package repository

import (
	"context"
	"time"

	"jewelry-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	AddItem(ctx context.Context, userID string, item models.WishlistItem) error
	RemoveItem(ctx context.Context, userID, sku string) (int64, error)
}

type MongoWishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *MongoWishlistRepository {
	return &MongoWishlistRepository{collection: db.Collection("wishlists")}
}

func (r *MongoWishlistRepository) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		return &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// AddItem is idempotent per SKU: re-adding an already wished item is a no-op.
func (r *MongoWishlistRepository) AddItem(ctx context.Context, userID string, item models.WishlistItem) error {
	now := time.Now().UTC()

	pull := bson.M{"$pull": bson.M{"items": bson.M{"sku": item.SKU}}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, pull); err != nil && err != mongo.ErrNoDocuments {
		return err
	}

	update := bson.M{
		"$push": bson.M{"items": item},
		"$set":  bson.M{"updated_at": now},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update,
		options.Update().SetUpsert(true))
	return err
}

func (r *MongoWishlistRepository) RemoveItem(ctx context.Context, userID, sku string) (int64, error) {
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"sku": sku}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
