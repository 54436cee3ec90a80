package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"jewelry-service/models"
	"jewelry-service/services"
)

type fakeProductService struct {
	lastParams         services.ListProductsParams
	listProductsCalled int
	listProductsFn     func(ctx context.Context, params services.ListProductsParams) ([]*models.Product, int64, error)
	getProductFn       func(ctx context.Context, sku string) (*models.Product, error)
}

func (f *fakeProductService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	if f.getProductFn != nil {
		return f.getProductFn(ctx, sku)
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProductService) ListProducts(ctx context.Context, params services.ListProductsParams) ([]*models.Product, int64, error) {
	f.listProductsCalled++
	f.lastParams = params
	if f.listProductsFn != nil {
		return f.listProductsFn(ctx, params)
	}
	return []*models.Product{}, 0, nil
}

func (f *fakeProductService) CreateProduct(ctx context.Context, req services.ProductCreateRequest) (*models.Product, error) {
	return &models.Product{ProductSKU: req.ProductSKU, Name: req.Name}, nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, sku string, updates bson.M) (int64, error) {
	return 0, nil
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, sku string) (int64, error) {
	return 0, nil
}

func TestGetProductsWithFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	fakeService := &fakeProductService{
		listProductsFn: func(ctx context.Context, params services.ListProductsParams) ([]*models.Product, int64, error) {
			return []*models.Product{
				{ProductSKU: "RNG-001", Name: "Solitaire Ring", Price: 1250},
			}, 1, nil
		},
	}

	controller := NewProductController(fakeService, nil)
	router := gin.New()
	router.GET("/products", controller.GetProducts)

	req := httptest.NewRequest(
		http.MethodGet,
		"/products?page=2&perPage=5&category=rings&shape=round&min_price=100&max_price=2000&ready_to_ship=true",
		nil,
	)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if fakeService.listProductsCalled != 1 {
		t.Fatalf("expected list products to be called once, got %d", fakeService.listProductsCalled)
	}

	params := fakeService.lastParams
	if params.Page != 2 || params.PerPage != 5 {
		t.Fatalf("unexpected pagination params: page=%d perPage=%d", params.Page, params.PerPage)
	}
	if params.Category != "rings" || params.Shape != "round" {
		t.Fatalf("unexpected filters: category=%q shape=%q", params.Category, params.Shape)
	}
	if params.MinPrice == nil || *params.MinPrice != 100 {
		t.Fatalf("expected min_price=100, got %v", params.MinPrice)
	}
	if params.MaxPrice == nil || *params.MaxPrice != 2000 {
		t.Fatalf("expected max_price=2000, got %v", params.MaxPrice)
	}
	if params.ReadyToShip == nil || !*params.ReadyToShip {
		t.Fatalf("expected ready_to_ship=true, got %v", params.ReadyToShip)
	}
}

func TestGetProductsDefaultsBadPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	fakeService := &fakeProductService{}
	controller := NewProductController(fakeService, nil)
	router := gin.New()
	router.GET("/products", controller.GetProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?page=-3&perPage=9999", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	params := fakeService.lastParams
	if params.Page != 1 || params.PerPage != 20 {
		t.Fatalf("expected defaults page=1 perPage=20, got page=%d perPage=%d", params.Page, params.PerPage)
	}
}

func TestGetProductBySKUNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewProductController(&fakeProductService{}, nil)
	router := gin.New()
	router.GET("/products/:sku", controller.GetProductBySKU)

	req := httptest.NewRequest(http.MethodGet, "/products/NOPE", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestGetProductBySKUFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	fakeService := &fakeProductService{
		getProductFn: func(ctx context.Context, sku string) (*models.Product, error) {
			return &models.Product{ProductSKU: sku, Name: "Solitaire Ring"}, nil
		},
	}
	controller := NewProductController(fakeService, nil)
	router := gin.New()
	router.GET("/products/:sku", controller.GetProductBySKU)

	req := httptest.NewRequest(http.MethodGet, "/products/RNG-001", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
}
