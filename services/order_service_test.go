package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"jewelry-service/models"
	"jewelry-service/pkg/apperrors"
)

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	f.orders[order.OrderNumber] = order
	return nil
}

func (f *fakeOrderRepo) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if o, ok := f.orders[orderNumber]; ok {
		return o, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string, page, perPage int) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (int64, error) {
	o, ok := f.orders[orderNumber]
	if !ok {
		return 0, nil
	}
	o.Status = status
	return 1, nil
}

type fakePublisher struct {
	events []models.CheckoutEvent
	err    error
}

func (f *fakePublisher) PublishCheckout(ctx context.Context, event models.CheckoutEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func seededCart(userID string) *models.Cart {
	return &models.Cart{
		UserID: userID,
		Items: []models.CartItem{
			{SKU: "RNG-001", Kind: models.ItemKindRTS, Quantity: 2, UnitPrice: 1250},
			{SKU: "D-100", Kind: models.ItemKindDiamond, Quantity: 1, UnitPrice: 3000},
		},
	}
}

func TestCreateFromCart(t *testing.T) {
	orders := newFakeOrderRepo()
	carts := newFakeCartRepo()
	carts.carts["user-1"] = seededCart("user-1")
	publisher := &fakePublisher{}

	svc := NewOrderService(orders, carts, publisher)
	order, err := svc.CreateFromCart(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 5500.0, order.Subtotal)
	assert.Len(t, order.Items, 2)

	// Checkout empties the cart and announces the order.
	_, stillThere := carts.carts["user-1"]
	assert.False(t, stillThere)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, order.OrderNumber, publisher.events[0].OrderNumber)
	assert.Equal(t, 2, publisher.events[0].ItemCount)
}

func TestCreateFromCartEmpty(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeCartRepo(), &fakePublisher{})

	_, err := svc.CreateFromCart(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
}

func TestCreateFromCartSurvivesBrokerOutage(t *testing.T) {
	orders := newFakeOrderRepo()
	carts := newFakeCartRepo()
	carts.carts["user-1"] = seededCart("user-1")

	svc := NewOrderService(orders, carts, &fakePublisher{err: errors.New("broker down")})
	order, err := svc.CreateFromCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, orders.orders, order.OrderNumber)
}

func TestCreateFromCartWithoutPublisher(t *testing.T) {
	orders := newFakeOrderRepo()
	carts := newFakeCartRepo()
	carts.carts["user-1"] = seededCart("user-1")

	svc := NewOrderService(orders, carts, nil)
	_, err := svc.CreateFromCart(context.Background(), "user-1")
	require.NoError(t, err)
}

func TestUpdateStatusEnforcesLifecycle(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.orders["ord-1"] = &models.Order{OrderNumber: "ord-1", UserID: "user-1", Status: models.OrderStatusPending}

	svc := NewOrderService(orders, newFakeCartRepo(), nil)
	ctx := context.Background()

	order, err := svc.UpdateStatus(ctx, "ord-1", models.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	// Paid orders cannot jump straight to delivered.
	_, err = svc.UpdateStatus(ctx, "ord-1", models.OrderStatusDelivered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")

	order, err = svc.UpdateStatus(ctx, "ord-1", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	// Shipped orders cannot be cancelled.
	_, err = svc.UpdateStatus(ctx, "ord-1", models.OrderStatusCancelled)
	assert.Error(t, err)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, models.OrderStatusPending.CanTransition(models.OrderStatusCancelled))
	assert.True(t, models.OrderStatusPaid.CanTransition(models.OrderStatusCancelled))
	assert.False(t, models.OrderStatusDelivered.CanTransition(models.OrderStatusPending))
	assert.False(t, models.OrderStatusCancelled.CanTransition(models.OrderStatusPaid))
}
