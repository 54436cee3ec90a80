package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Diamond is a loose-stone inventory item. Price is always PricePerCarat *
// Carat, recomputed on every write.
type Diamond struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	StockNumber  string             `json:"stock_number" bson:"stock_number"`
	Shape        string             `json:"shape" bson:"shape"`
	Carat        float64            `json:"carat" bson:"carat"`
	Color        string             `json:"color,omitempty" bson:"color,omitempty"`
	Clarity      string             `json:"clarity,omitempty" bson:"clarity,omitempty"`
	Cut          string             `json:"cut,omitempty" bson:"cut,omitempty"`
	Certificate  string             `json:"certificate,omitempty" bson:"certificate,omitempty"`
	PricePerCarat float64           `json:"price_per_carat" bson:"price_per_carat"`
	Price        float64            `json:"price" bson:"price"`
	Available    bool               `json:"available" bson:"available"`
	CreatedAt    time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
