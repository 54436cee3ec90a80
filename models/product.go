package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog root. ProductSKU is the natural key every variant
// kind resolves against.
type Product struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductSKU       string             `json:"product_sku" bson:"product_sku"`
	Name             string             `json:"name" bson:"name"`
	Description      string             `json:"description,omitempty" bson:"description,omitempty"`
	Categories       []string           `json:"categories,omitempty" bson:"categories,omitempty"`
	Style            string             `json:"style,omitempty" bson:"style,omitempty"`
	Shape            string             `json:"shape,omitempty" bson:"shape,omitempty"`
	Price            float64            `json:"price,omitempty" bson:"price,omitempty"`
	Images           []string           `json:"images,omitempty" bson:"images,omitempty"`
	ReadyToShip      bool               `json:"ready_to_ship" bson:"ready_to_ship"`
	EngravingAllowed bool               `json:"engraving_allowed" bson:"engraving_allowed"`
	Active           bool               `json:"active" bson:"active"`
	LaunchDate       *time.Time         `json:"launch_date,omitempty" bson:"launch_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
