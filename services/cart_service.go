package services

import (
	"context"
	"fmt"

	"jewelry-service/models"
	"jewelry-service/repository"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	diamonds repository.DiamondRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, diamonds repository.DiamondRepository) *CartService {
	return &CartService{carts: carts, products: products, diamonds: diamonds}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddItem resolves the unit price server-side so a client can never set its
// own price, then merges the quantity into any existing line for the SKU.
func (s *CartService) AddItem(ctx context.Context, userID, sku string, kind models.ItemKind, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	name, unitPrice, err := s.resolveItem(ctx, sku, kind)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SKU == sku {
			cart.Items[i].Quantity += quantity
			cart.Items[i].UnitPrice = unitPrice
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			SKU:       sku,
			Kind:      kind,
			Name:      name,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, sku string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.SKU == sku {
			found = true
			if quantity == 0 {
				continue
			}
			item.Quantity = quantity
		}
		items = append(items, item)
	}
	if !found {
		return nil, fmt.Errorf("item %q not in cart", sku)
	}
	cart.Items = items

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, sku string) (*models.Cart, error) {
	return s.UpdateQuantity(ctx, userID, sku, 0)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

func (s *CartService) resolveItem(ctx context.Context, sku string, kind models.ItemKind) (string, float64, error) {
	if kind == models.ItemKindDiamond {
		diamond, err := s.diamonds.FindByStockNumber(ctx, sku)
		if err != nil {
			return "", 0, fmt.Errorf("diamond %q not found: %w", sku, err)
		}
		if !diamond.Available {
			return "", 0, fmt.Errorf("diamond %q is no longer available", sku)
		}
		name := fmt.Sprintf("%.2fct %s diamond", diamond.Carat, diamond.Shape)
		return name, diamond.Price, nil
	}

	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return "", 0, fmt.Errorf("product %q not found: %w", sku, err)
	}
	if !product.Active {
		return "", 0, fmt.Errorf("product %q is not active", sku)
	}
	return product.Name, product.Price, nil
}
