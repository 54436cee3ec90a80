package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// VariantSummary describes the option space of one variant SKU: the metal
// types, shapes and stone weights it can expand into.
type VariantSummary struct {
	ID                 primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	VariantSKU         string             `json:"variant_sku" bson:"variant_sku"`
	ProductSKU         string             `json:"product_sku" bson:"product_sku"`
	MetalTypes         []string           `json:"metal_types,omitempty" bson:"metal_types,omitempty"`
	Shapes             []string           `json:"shapes,omitempty" bson:"shapes,omitempty"`
	CenterStoneWeights []float64          `json:"center_stone_weights,omitempty" bson:"center_stone_weights,omitempty"`
	Stock              float64            `json:"stock,omitempty" bson:"stock,omitempty"`
	ReadyToShip        bool               `json:"ready_to_ship" bson:"ready_to_ship"`
	Active             bool               `json:"active" bson:"active"`
}

// ExpandedVariant is one concrete metal x shape x stone-weight expansion of a
// variant SKU. The four-field combination is the upsert identity; one variant
// SKU owns many expansions.
type ExpandedVariant struct {
	ID                primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	VariantSKU        string             `json:"variant_sku" bson:"variant_sku"`
	ProductID         primitive.ObjectID `json:"product_id" bson:"product_id"`
	ProductSKU        string             `json:"product_sku" bson:"product_sku"`
	MetalType         string             `json:"metal_type,omitempty" bson:"metal_type,omitempty"`
	MetalCode         string             `json:"metal_code" bson:"metal_code"`
	ShapeCode         string             `json:"shape_code" bson:"shape_code"`
	CenterStoneWeight float64            `json:"center_stone_weight" bson:"center_stone_weight"`
	StonePrice        float64            `json:"stone_price,omitempty" bson:"stone_price,omitempty"`
	MetalPrice        float64            `json:"metal_price,omitempty" bson:"metal_price,omitempty"`
	TotalPrice        float64            `json:"total_price,omitempty" bson:"total_price,omitempty"`
	Stock             float64            `json:"stock,omitempty" bson:"stock,omitempty"`
}

// DYOExpandedVariant is the design-your-own counterpart: one document per
// variant SKU, priced from its metal weight.
type DYOExpandedVariant struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	VariantSKU  string             `json:"variant_sku" bson:"variant_sku"`
	ProductID   primitive.ObjectID `json:"product_id" bson:"product_id"`
	ProductSKU  string             `json:"product_sku" bson:"product_sku"`
	MetalType   string             `json:"metal_type,omitempty" bson:"metal_type,omitempty"`
	MetalCode   string             `json:"metal_code,omitempty" bson:"metal_code,omitempty"`
	ShapeCode   string             `json:"shape_code,omitempty" bson:"shape_code,omitempty"`
	MetalWeight float64            `json:"metal_weight,omitempty" bson:"metal_weight,omitempty"`
	MetalPrice  float64            `json:"metal_price,omitempty" bson:"metal_price,omitempty"`
	ReadyToShip bool               `json:"ready_to_ship" bson:"ready_to_ship"`
}

// DYOVariant lists the metals and shapes a product may be configured with.
// The product reference is optional; the row is written even when the owning
// product has not been imported yet.
type DYOVariant struct {
	ID         primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductSKU string              `json:"product_sku" bson:"product_sku"`
	ProductID  *primitive.ObjectID `json:"product_id,omitempty" bson:"product_id,omitempty"`
	MetalTypes []string            `json:"metal_types,omitempty" bson:"metal_types,omitempty"`
	Shapes     []string            `json:"shapes,omitempty" bson:"shapes,omitempty"`
}
