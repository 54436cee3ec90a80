package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BulkResult carries the counts reported by one unordered bulk write.
type BulkResult struct {
	Matched  int64
	Modified int64
	Upserted int64
}

// CatalogRepository is the write/lookup surface the bulk importer runs
// against. Each BulkUpsert method submits one unordered batch; a failed row
// does not block its siblings.
type CatalogRepository interface {
	BulkUpsertMetals(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error)
	BulkUpsertProducts(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error)
	BulkUpsertVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error)
	BulkUpsertExpandedVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error)
	BulkUpsertDYOExpandedVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error)
	BulkUpsertDYOVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error)

	// ProductIDsBySKU loads every persisted product's sku -> id in one query.
	ProductIDsBySKU(ctx context.Context) (map[string]primitive.ObjectID, error)
	// MetalRates loads metal_type -> rate_per_gram for active metals.
	MetalRates(ctx context.Context) (map[string]float64, error)
}

type MongoCatalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) *MongoCatalogRepository {
	return &MongoCatalogRepository{db: db}
}

func (r *MongoCatalogRepository) bulkUpsert(ctx context.Context, coll string, ops []mongo.WriteModel) (*BulkResult, error) {
	if len(ops) == 0 {
		return &BulkResult{}, nil
	}

	res, err := r.db.Collection(coll).BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) && res != nil {
			// Unordered batch: sibling rows already went through, keep their
			// counts and continue the import.
			zap.L().Warn("Bulk upsert completed with row-level write errors",
				zap.String("collection", coll),
				zap.Int("failed_rows", len(bulkErr.WriteErrors)),
			)
		} else {
			return nil, err
		}
	}

	return &BulkResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
		Upserted: res.UpsertedCount,
	}, nil
}

func (r *MongoCatalogRepository) BulkUpsertMetals(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error) {
	return r.bulkUpsert(ctx, "metals", ops)
}

func (r *MongoCatalogRepository) BulkUpsertProducts(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error) {
	return r.bulkUpsert(ctx, "products", ops)
}

func (r *MongoCatalogRepository) BulkUpsertVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error) {
	return r.bulkUpsert(ctx, "variants", ops)
}

func (r *MongoCatalogRepository) BulkUpsertExpandedVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error) {
	return r.bulkUpsert(ctx, "expanded_variants", ops)
}

func (r *MongoCatalogRepository) BulkUpsertDYOExpandedVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error) {
	return r.bulkUpsert(ctx, "dyo_expanded_variants", ops)
}

func (r *MongoCatalogRepository) BulkUpsertDYOVariants(ctx context.Context, ops []mongo.WriteModel) (*BulkResult, error) {
	return r.bulkUpsert(ctx, "dyo_variants", ops)
}

func (r *MongoCatalogRepository) ProductIDsBySKU(ctx context.Context) (map[string]primitive.ObjectID, error) {
	cursor, err := r.db.Collection("products").Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1, "product_sku": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := make(map[string]primitive.ObjectID)
	for cursor.Next(ctx) {
		var doc struct {
			ID         primitive.ObjectID `bson:"_id"`
			ProductSKU string             `bson:"product_sku"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.ProductSKU != "" {
			ids[doc.ProductSKU] = doc.ID
		}
	}
	return ids, cursor.Err()
}

func (r *MongoCatalogRepository) MetalRates(ctx context.Context) (map[string]float64, error) {
	cursor, err := r.db.Collection("metals").Find(ctx, bson.M{"active": true},
		options.Find().SetProjection(bson.M{"metal_type": 1, "rate_per_gram": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rates := make(map[string]float64)
	for cursor.Next(ctx) {
		var doc struct {
			MetalType   string  `bson:"metal_type"`
			RatePerGram float64 `bson:"rate_per_gram"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.MetalType != "" {
			rates[doc.MetalType] = doc.RatePerGram
		}
	}
	return rates, cursor.Err()
}
