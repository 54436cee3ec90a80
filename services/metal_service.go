package services

import (
	"context"
	"time"

	"jewelry-service/models"
	"jewelry-service/repository"
)

type MetalUpsertRequest struct {
	MetalType       string  `json:"metal_type" binding:"required"`
	MetalCode       string  `json:"metal_code"`
	RatePerGram     float64 `json:"rate_per_gram" binding:"required,gt=0"`
	PriceMultiplier float64 `json:"price_multiplier"`
	Active          *bool   `json:"active"`
}

type MetalService struct {
	repo repository.MetalRepository
}

func NewMetalService(repo repository.MetalRepository) *MetalService {
	return &MetalService{repo: repo}
}

func (s *MetalService) ListMetals(ctx context.Context) ([]*models.Metal, error) {
	return s.repo.List(ctx)
}

func (s *MetalService) GetMetal(ctx context.Context, metalType string) (*models.Metal, error) {
	return s.repo.FindByType(ctx, metalType)
}

// UpsertMetal writes a metal rate keyed by metal_type and reports whether the
// call created a new document.
func (s *MetalService) UpsertMetal(ctx context.Context, req MetalUpsertRequest) (*models.Metal, bool, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	metal := &models.Metal{
		MetalType:       req.MetalType,
		MetalCode:       req.MetalCode,
		RatePerGram:     req.RatePerGram,
		PriceMultiplier: req.PriceMultiplier,
		Active:          active,
		UpdatedAt:       time.Now().UTC(),
	}
	created, err := s.repo.Upsert(ctx, metal)
	if err != nil {
		return nil, false, err
	}
	return metal, created, nil
}

func (s *MetalService) DeleteMetal(ctx context.Context, metalType string) (int64, error) {
	return s.repo.Delete(ctx, metalType)
}
