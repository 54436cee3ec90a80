package models

import "time"

// ItemKind distinguishes the two catalog item kinds carried in carts, orders
// and wishlists.
type ItemKind string

const (
	ItemKindRTS     ItemKind = "rts" // pre-built, ready to ship
	ItemKindDYO     ItemKind = "dyo" // configured to order
	ItemKindDiamond ItemKind = "diamond"
)

type CartItem struct {
	SKU       string   `json:"sku" bson:"sku"`
	Kind      ItemKind `json:"kind" bson:"kind"`
	Name      string   `json:"name,omitempty" bson:"name,omitempty"`
	Quantity  int      `json:"quantity" bson:"quantity"`
	UnitPrice float64  `json:"unit_price" bson:"unit_price"`
}

type Cart struct {
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Subtotal sums quantity-weighted unit prices.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
