package models

import "time"

type WishlistItem struct {
	SKU     string    `json:"sku" bson:"sku"`
	Kind    ItemKind  `json:"kind" bson:"kind"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
}

type Wishlist struct {
	UserID    string         `json:"user_id" bson:"user_id"`
	Items     []WishlistItem `json:"items" bson:"items"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}
