package services

import (
	"context"
	"fmt"

	"jewelry-service/models"
	"jewelry-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SearchDiamondsParams struct {
	Page      int
	PerPage   int
	Shape     string
	MinCarat  *float64
	MaxCarat  *float64
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
}

type DiamondUpsertRequest struct {
	StockNumber   string  `json:"stock_number" binding:"required"`
	Shape         string  `json:"shape" binding:"required"`
	Carat         float64 `json:"carat" binding:"required,gt=0"`
	Color         string  `json:"color"`
	Clarity       string  `json:"clarity"`
	Cut           string  `json:"cut"`
	Certificate   string  `json:"certificate"`
	PricePerCarat float64 `json:"price_per_carat" binding:"required,gt=0"`
	Available     *bool   `json:"available"`
}

type DiamondService struct {
	repo repository.DiamondRepository
}

func NewDiamondService(repo repository.DiamondRepository) *DiamondService {
	return &DiamondService{repo: repo}
}

func (s *DiamondService) GetDiamond(ctx context.Context, stockNumber string) (*models.Diamond, error) {
	return s.repo.FindByStockNumber(ctx, stockNumber)
}

func (s *DiamondService) SearchDiamonds(ctx context.Context, params SearchDiamondsParams) ([]*models.Diamond, int64, error) {
	filter := bson.M{}
	if params.Shape != "" {
		filter["shape"] = params.Shape
	}
	if params.Available != nil {
		filter["available"] = *params.Available
	}
	if params.MinCarat != nil || params.MaxCarat != nil {
		carat := bson.M{}
		if params.MinCarat != nil {
			carat["$gte"] = *params.MinCarat
		}
		if params.MaxCarat != nil {
			carat["$lte"] = *params.MaxCarat
		}
		filter["carat"] = carat
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
		SetSort(bson.D{{Key: "carat", Value: 1}}).
		SetLimit(int64(params.PerPage)).
		SetSkip(int64((params.Page - 1) * params.PerPage))

	diamonds, err := s.repo.Search(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return diamonds, total, nil
}

// CreateDiamond persists a stone with its price computed from per-carat rate.
func (s *DiamondService) CreateDiamond(ctx context.Context, req DiamondUpsertRequest) (*models.Diamond, error) {
	if existing, err := s.repo.FindByStockNumber(ctx, req.StockNumber); err == nil && existing != nil {
		return nil, fmt.Errorf("diamond %q already exists", req.StockNumber)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	diamond := &models.Diamond{
		StockNumber:   req.StockNumber,
		Shape:         req.Shape,
		Carat:         req.Carat,
		Color:         req.Color,
		Clarity:       req.Clarity,
		Cut:           req.Cut,
		Certificate:   req.Certificate,
		PricePerCarat: req.PricePerCarat,
		Price:         StonePrice(req.PricePerCarat, req.Carat),
		Available:     available,
	}
	if err := s.repo.Create(ctx, diamond); err != nil {
		return nil, err
	}
	return diamond, nil
}

// UpdateDiamond applies updates and recomputes the total price whenever carat
// or per-carat rate change.
func (s *DiamondService) UpdateDiamond(ctx context.Context, stockNumber string, updates bson.M) (int64, error) {
	if len(updates) == 0 {
		return 0, fmt.Errorf("no update fields provided")
	}

	_, caratChanged := updates["carat"]
	_, rateChanged := updates["price_per_carat"]
	if caratChanged || rateChanged {
		current, err := s.repo.FindByStockNumber(ctx, stockNumber)
		if err != nil {
			return 0, err
		}
		carat := current.Carat
		rate := current.PricePerCarat
		if v, ok := toFloat(updates["carat"]); ok {
			carat = v
		}
		if v, ok := toFloat(updates["price_per_carat"]); ok {
			rate = v
		}
		updates["price"] = StonePrice(rate, carat)
	}

	return s.repo.Update(ctx, stockNumber, updates)
}

func (s *DiamondService) DeleteDiamond(ctx context.Context, stockNumber string) (int64, error) {
	return s.repo.Delete(ctx, stockNumber)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
