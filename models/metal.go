package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metal is a pricing input: variant metal cost = RatePerGram * metal weight,
// scaled by PriceMultiplier.
type Metal struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	MetalType       string             `json:"metal_type" bson:"metal_type"`
	MetalCode       string             `json:"metal_code,omitempty" bson:"metal_code,omitempty"`
	RatePerGram     float64            `json:"rate_per_gram" bson:"rate_per_gram"`
	PriceMultiplier float64            `json:"price_multiplier,omitempty" bson:"price_multiplier,omitempty"`
	Active          bool               `json:"active" bson:"active"`
	UpdatedAt       time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
