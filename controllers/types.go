package controllers

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"jewelry-service/models"
	"jewelry-service/services"
)

// Default configuration values
const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// ProductServiceAPI defines the interface for product operations
type ProductServiceAPI interface {
	GetProduct(ctx context.Context, sku string) (*models.Product, error)
	ListProducts(ctx context.Context, params services.ListProductsParams) ([]*models.Product, int64, error)
	CreateProduct(ctx context.Context, req services.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, sku string, updates bson.M) (int64, error)
	DeleteProduct(ctx context.Context, sku string) (int64, error)
}

// MetalServiceAPI defines the interface for metal rate administration
type MetalServiceAPI interface {
	ListMetals(ctx context.Context) ([]*models.Metal, error)
	GetMetal(ctx context.Context, metalType string) (*models.Metal, error)
	UpsertMetal(ctx context.Context, req services.MetalUpsertRequest) (*models.Metal, bool, error)
	DeleteMetal(ctx context.Context, metalType string) (int64, error)
}

// DiamondServiceAPI defines the interface for loose stone operations
type DiamondServiceAPI interface {
	GetDiamond(ctx context.Context, stockNumber string) (*models.Diamond, error)
	SearchDiamonds(ctx context.Context, params services.SearchDiamondsParams) ([]*models.Diamond, int64, error)
	CreateDiamond(ctx context.Context, req services.DiamondUpsertRequest) (*models.Diamond, error)
	UpdateDiamond(ctx context.Context, stockNumber string, updates bson.M) (int64, error)
	DeleteDiamond(ctx context.Context, stockNumber string) (int64, error)
}

// VariantServiceAPI defines the interface for variant reads and DYO quoting
type VariantServiceAPI interface {
	ListByProduct(ctx context.Context, productSKU string) ([]*models.VariantSummary, error)
	GetExpanded(ctx context.Context, variantSKU, metalCode, shapeCode string, centerStoneWeight float64) (*models.ExpandedVariant, error)
	ListExpanded(ctx context.Context, variantSKU string) ([]*models.ExpandedVariant, error)
	QuoteDYO(ctx context.Context, variantSKU, metalType, stoneStockNumber string) (*services.DYOQuote, error)
	GetDYOVariant(ctx context.Context, productSKU string) (*models.DYOVariant, error)
}

// CartServiceAPI defines the interface for cart operations
type CartServiceAPI interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID, sku string, kind models.ItemKind, quantity int) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, sku string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, sku string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// OrderServiceAPI defines the interface for order operations
type OrderServiceAPI interface {
	CreateFromCart(ctx context.Context, userID string) (*models.Order, error)
	GetOrder(ctx context.Context, orderNumber string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string, page, perPage int) ([]*models.Order, int64, error)
	UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.Order, error)
}

// WishlistServiceAPI defines the interface for wishlist operations
type WishlistServiceAPI interface {
	GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	AddItem(ctx context.Context, userID, sku string, kind models.ItemKind) (*models.Wishlist, error)
	RemoveItem(ctx context.Context, userID, sku string) (*models.Wishlist, error)
}

// ImportServiceAPI defines the interface for bulk catalog imports
type ImportServiceAPI interface {
	ProcessWorkbook(ctx context.Context, file io.Reader) (*models.ImportSummary, error)
}

// PresignServiceAPI defines the interface for direct-to-storage upload URLs
type PresignServiceAPI interface {
	GeneratePresignedUpload(ctx context.Context, sku, filename, contentType string, expiresSeconds int64) (string, string, string, error)
}
