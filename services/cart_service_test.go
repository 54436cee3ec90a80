package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jewelry-service/models"
)

type fakeCartRepo struct {
	carts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartRepo) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	return &models.Cart{UserID: userID}, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if p, ok := f.products[sku]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProductRepo) Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, filter bson.M) (int64, error) { return 0, nil }

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error { return nil }

func (f *fakeProductRepo) Update(ctx context.Context, sku string, updates bson.M) (int64, error) {
	return 0, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, sku string) (int64, error) { return 0, nil }

type fakeDiamondRepo struct {
	diamonds map[string]*models.Diamond
}

func (f *fakeDiamondRepo) FindByStockNumber(ctx context.Context, stockNumber string) (*models.Diamond, error) {
	if d, ok := f.diamonds[stockNumber]; ok {
		return d, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeDiamondRepo) Search(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Diamond, error) {
	return nil, nil
}

func (f *fakeDiamondRepo) Count(ctx context.Context, filter bson.M) (int64, error) { return 0, nil }

func (f *fakeDiamondRepo) Create(ctx context.Context, diamond *models.Diamond) error { return nil }

func (f *fakeDiamondRepo) Update(ctx context.Context, stockNumber string, updates bson.M) (int64, error) {
	return 0, nil
}

func (f *fakeDiamondRepo) Delete(ctx context.Context, stockNumber string) (int64, error) {
	return 0, nil
}

func newCartFixture() (*CartService, *fakeCartRepo) {
	carts := newFakeCartRepo()
	products := &fakeProductRepo{products: map[string]*models.Product{
		"RNG-001": {ProductSKU: "RNG-001", Name: "Solitaire Ring", Price: 1250, Active: true},
		"RNG-OFF": {ProductSKU: "RNG-OFF", Name: "Retired Ring", Price: 900, Active: false},
	}}
	diamonds := &fakeDiamondRepo{diamonds: map[string]*models.Diamond{
		"D-100": {StockNumber: "D-100", Shape: "Round", Carat: 1.5, Price: 3000, Available: true},
		"D-200": {StockNumber: "D-200", Shape: "Oval", Carat: 1.0, Price: 2100, Available: false},
	}}
	return NewCartService(carts, products, diamonds), carts
}

func TestAddItemResolvesPriceServerSide(t *testing.T) {
	svc, _ := newCartFixture()

	cart, err := svc.AddItem(context.Background(), "user-1", "RNG-001", models.ItemKindRTS, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1250.0, cart.Items[0].UnitPrice)
	assert.Equal(t, "Solitaire Ring", cart.Items[0].Name)
	assert.Equal(t, 2500.0, cart.Subtotal())
}

func TestAddItemMergesQuantity(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "RNG-001", models.ItemKindRTS, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "user-1", "RNG-001", models.ItemKindRTS, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemRejectsInactiveAndUnavailable(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "RNG-OFF", models.ItemKindRTS, 1)
	assert.Error(t, err)

	_, err = svc.AddItem(ctx, "user-1", "D-200", models.ItemKindDiamond, 1)
	assert.Error(t, err)

	_, err = svc.AddItem(ctx, "user-1", "NOPE", models.ItemKindRTS, 1)
	assert.Error(t, err)

	_, err = svc.AddItem(ctx, "user-1", "RNG-001", models.ItemKindRTS, 0)
	assert.Error(t, err)
}

func TestAddDiamondUsesInventoryPrice(t *testing.T) {
	svc, _ := newCartFixture()

	cart, err := svc.AddItem(context.Background(), "user-1", "D-100", models.ItemKindDiamond, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3000.0, cart.Items[0].UnitPrice)
	assert.Equal(t, models.ItemKindDiamond, cart.Items[0].Kind)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "RNG-001", models.ItemKindRTS, 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "user-1", "RNG-001", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateQuantity(ctx, "user-1", "RNG-001", 1)
	assert.Error(t, err, "line no longer exists")
}
