package services

import (
	"context"
	"time"

	"jewelry-service/models"
	"jewelry-service/repository"
)

type WishlistService struct {
	wishlists repository.WishlistRepository
}

func NewWishlistService(wishlists repository.WishlistRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists}
}

func (s *WishlistService) GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	return s.wishlists.Get(ctx, userID)
}

func (s *WishlistService) AddItem(ctx context.Context, userID, sku string, kind models.ItemKind) (*models.Wishlist, error) {
	item := models.WishlistItem{
		SKU:     sku,
		Kind:    kind,
		AddedAt: time.Now().UTC(),
	}
	if err := s.wishlists.AddItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return s.wishlists.Get(ctx, userID)
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, sku string) (*models.Wishlist, error) {
	if _, err := s.wishlists.RemoveItem(ctx, userID, sku); err != nil {
		return nil, err
	}
	return s.wishlists.Get(ctx, userID)
}
