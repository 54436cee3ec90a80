package repository

import (
	"context"

	"jewelry-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type VariantRepository interface {
	ListByProduct(ctx context.Context, productSKU string) ([]*models.VariantSummary, error)
	FindExpanded(ctx context.Context, variantSKU, metalCode, shapeCode string, centerStoneWeight float64) (*models.ExpandedVariant, error)
	ListExpanded(ctx context.Context, variantSKU string) ([]*models.ExpandedVariant, error)
	FindDYOExpanded(ctx context.Context, variantSKU string) (*models.DYOExpandedVariant, error)
	FindDYOVariant(ctx context.Context, productSKU string) (*models.DYOVariant, error)
}

type MongoVariantRepository struct {
	db *mongo.Database
}

func NewVariantRepository(db *mongo.Database) *MongoVariantRepository {
	return &MongoVariantRepository{db: db}
}

func (r *MongoVariantRepository) ListByProduct(ctx context.Context, productSKU string) ([]*models.VariantSummary, error) {
	cursor, err := r.db.Collection("variants").Find(ctx, bson.M{"product_sku": productSKU})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var variants []*models.VariantSummary
	if err = cursor.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *MongoVariantRepository) FindExpanded(ctx context.Context, variantSKU, metalCode, shapeCode string, centerStoneWeight float64) (*models.ExpandedVariant, error) {
	filter := bson.M{
		"variant_sku":         variantSKU,
		"metal_code":          metalCode,
		"shape_code":          shapeCode,
		"center_stone_weight": centerStoneWeight,
	}
	var variant models.ExpandedVariant
	if err := r.db.Collection("expanded_variants").FindOne(ctx, filter).Decode(&variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *MongoVariantRepository) ListExpanded(ctx context.Context, variantSKU string) ([]*models.ExpandedVariant, error) {
	cursor, err := r.db.Collection("expanded_variants").Find(ctx, bson.M{"variant_sku": variantSKU})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var variants []*models.ExpandedVariant
	if err = cursor.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *MongoVariantRepository) FindDYOExpanded(ctx context.Context, variantSKU string) (*models.DYOExpandedVariant, error) {
	var variant models.DYOExpandedVariant
	if err := r.db.Collection("dyo_expanded_variants").FindOne(ctx, bson.M{"variant_sku": variantSKU}).Decode(&variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *MongoVariantRepository) FindDYOVariant(ctx context.Context, productSKU string) (*models.DYOVariant, error) {
	var variant models.DYOVariant
	if err := r.db.Collection("dyo_variants").FindOne(ctx, bson.M{"product_sku": productSKU}).Decode(&variant); err != nil {
		return nil, err
	}
	return &variant, nil
}
