package services

import (
	"context"
	"fmt"

	"jewelry-service/models"
	"jewelry-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProductsParams defines the filters for listing products. Pointer fields
// distinguish "not set" from zero values.
type ListProductsParams struct {
	Page        int
	PerPage     int
	Category    string
	Style       string
	Shape       string
	MinPrice    *float64
	MaxPrice    *float64
	ReadyToShip *bool
}

type ProductCreateRequest struct {
	ProductSKU       string   `json:"product_sku" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Categories       []string `json:"categories"`
	Style            string   `json:"style"`
	Shape            string   `json:"shape"`
	Price            float64  `json:"price"`
	Images           []string `json:"images"`
	ReadyToShip      bool     `json:"ready_to_ship"`
	EngravingAllowed bool     `json:"engraving_allowed"`
}

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

func (s *ProductService) ListProducts(ctx context.Context, params ListProductsParams) ([]*models.Product, int64, error) {
	filter := bson.M{"active": true}
	if params.Category != "" {
		filter["categories"] = params.Category
	}
	if params.Style != "" {
		filter["style"] = params.Style
	}
	if params.Shape != "" {
		filter["shape"] = params.Shape
	}
	if params.ReadyToShip != nil {
		filter["ready_to_ship"] = *params.ReadyToShip
	}
	if params.MinPrice != nil || params.MaxPrice != nil {
		price := bson.M{}
		if params.MinPrice != nil {
			price["$gte"] = *params.MinPrice
		}
		if params.MaxPrice != nil {
			price["$lte"] = *params.MaxPrice
		}
		filter["price"] = price
	}

	findOptions := options.Find().
		SetLimit(int64(params.PerPage)).
		SetSkip(int64((params.Page - 1) * params.PerPage))

	products, err := s.repo.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req ProductCreateRequest) (*models.Product, error) {
	if existing, err := s.repo.FindBySKU(ctx, req.ProductSKU); err == nil && existing != nil {
		return nil, fmt.Errorf("product %q already exists", req.ProductSKU)
	}

	product := &models.Product{
		ProductSKU:       req.ProductSKU,
		Name:             req.Name,
		Description:      req.Description,
		Categories:       req.Categories,
		Style:            req.Style,
		Shape:            req.Shape,
		Price:            req.Price,
		Images:           req.Images,
		ReadyToShip:      req.ReadyToShip,
		EngravingAllowed: req.EngravingAllowed,
		Active:           true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, sku string, updates bson.M) (int64, error) {
	if len(updates) == 0 {
		return 0, fmt.Errorf("no update fields provided")
	}
	return s.repo.Update(ctx, sku, updates)
}

func (s *ProductService) DeleteProduct(ctx context.Context, sku string) (int64, error) {
	return s.repo.Delete(ctx, sku)
}
