package services

import (
	"context"
	"fmt"
	"time"

	"jewelry-service/models"
	"jewelry-service/pkg/apperrors"
	"jewelry-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher sends order lifecycle events to the message broker.
type EventPublisher interface {
	PublishCheckout(ctx context.Context, event models.CheckoutEvent) error
}

type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	publisher EventPublisher
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, publisher EventPublisher) *OrderService {
	return &OrderService{orders: orders, carts: carts, publisher: publisher}
}

// CreateFromCart turns the user's cart into a pending order and clears the
// cart. The checkout event is published best-effort; a broker outage must not
// fail an already persisted order.
func (s *OrderService) CreateFromCart(ctx context.Context, userID string) (*models.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, models.OrderItem{
			SKU:       ci.SKU,
			Kind:      ci.Kind,
			Name:      ci.Name,
			Quantity:  ci.Quantity,
			UnitPrice: ci.UnitPrice,
		})
	}

	order := &models.Order{
		OrderNumber: uuid.New().String(),
		UserID:      userID,
		Items:       items,
		Subtotal:    cart.Subtotal(),
		Status:      models.OrderStatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		zap.L().Warn("Failed to clear cart after checkout",
			zap.String("user_id", userID), zap.Error(err))
	}

	if s.publisher != nil {
		event := models.CheckoutEvent{
			OrderNumber: order.OrderNumber,
			UserID:      userID,
			Subtotal:    order.Subtotal,
			ItemCount:   len(order.Items),
			PlacedAt:    time.Now().UTC(),
		}
		if err := s.publisher.PublishCheckout(ctx, event); err != nil {
			zap.L().Error("Failed to publish checkout event",
				zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orders.FindByNumber(ctx, orderNumber)
}

func (s *OrderService) ListOrders(ctx context.Context, userID string, page, perPage int) ([]*models.Order, int64, error) {
	return s.orders.ListByUser(ctx, userID, page, perPage)
}

// UpdateStatus moves an order along its lifecycle, rejecting transitions the
// lifecycle does not allow.
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("cannot transition order from %s to %s", order.Status, status)
	}

	if _, err := s.orders.UpdateStatus(ctx, orderNumber, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
