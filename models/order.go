package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// validTransitions encodes the order lifecycle; cancellation is allowed until
// the order ships.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from its current status to
// the requested one.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderItem struct {
	SKU       string   `json:"sku" bson:"sku"`
	Kind      ItemKind `json:"kind" bson:"kind"`
	Name      string   `json:"name,omitempty" bson:"name,omitempty"`
	Quantity  int      `json:"quantity" bson:"quantity"`
	UnitPrice float64  `json:"unit_price" bson:"unit_price"`
}

type Order struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderNumber string             `json:"order_number" bson:"order_number"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Items       []OrderItem        `json:"items" bson:"items"`
	Subtotal    float64            `json:"subtotal" bson:"subtotal"`
	Status      OrderStatus        `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CheckoutEvent is published to Kafka when an order is placed.
type CheckoutEvent struct {
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Subtotal    float64   `json:"subtotal"`
	ItemCount   int       `json:"item_count"`
	PlacedAt    time.Time `json:"placed_at"`
}
