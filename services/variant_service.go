package services

import (
	"context"
	"fmt"

	"jewelry-service/models"
	"jewelry-service/repository"
)

// DYOQuote is a live price for one design-your-own configuration. It is never
// persisted; quotes read current metal rates and stone prices at request time.
type DYOQuote struct {
	VariantSKU  string  `json:"variant_sku"`
	MetalType   string  `json:"metal_type"`
	MetalWeight float64 `json:"metal_weight"`
	MetalPrice  float64 `json:"metal_price"`
	StoneStock  string  `json:"stone_stock_number,omitempty"`
	StonePrice  float64 `json:"stone_price,omitempty"`
	TotalPrice  float64 `json:"total_price"`
}

type VariantService struct {
	variants repository.VariantRepository
	metals   repository.MetalRepository
	diamonds repository.DiamondRepository
}

func NewVariantService(variants repository.VariantRepository, metals repository.MetalRepository, diamonds repository.DiamondRepository) *VariantService {
	return &VariantService{variants: variants, metals: metals, diamonds: diamonds}
}

func (s *VariantService) ListByProduct(ctx context.Context, productSKU string) ([]*models.VariantSummary, error) {
	return s.variants.ListByProduct(ctx, productSKU)
}

func (s *VariantService) GetExpanded(ctx context.Context, variantSKU, metalCode, shapeCode string, centerStoneWeight float64) (*models.ExpandedVariant, error) {
	return s.variants.FindExpanded(ctx, variantSKU, metalCode, shapeCode, centerStoneWeight)
}

func (s *VariantService) ListExpanded(ctx context.Context, variantSKU string) ([]*models.ExpandedVariant, error) {
	return s.variants.ListExpanded(ctx, variantSKU)
}

// QuoteDYO prices a design-your-own configuration: the variant's metal weight
// at the requested metal's current rate (scaled by its multiplier), plus an
// optional center stone priced per carat.
func (s *VariantService) QuoteDYO(ctx context.Context, variantSKU, metalType, stoneStockNumber string) (*DYOQuote, error) {
	variant, err := s.variants.FindDYOExpanded(ctx, variantSKU)
	if err != nil {
		return nil, fmt.Errorf("variant %q not found: %w", variantSKU, err)
	}
	if metalType == "" {
		metalType = variant.MetalType
	}

	metal, err := s.metals.FindByType(ctx, metalType)
	if err != nil {
		return nil, fmt.Errorf("metal %q not found: %w", metalType, err)
	}

	quote := &DYOQuote{
		VariantSKU:  variantSKU,
		MetalType:   metalType,
		MetalWeight: variant.MetalWeight,
		MetalPrice:  MetalCostWithMultiplier(metal.RatePerGram, variant.MetalWeight, metal.PriceMultiplier),
	}

	if stoneStockNumber != "" {
		diamond, err := s.diamonds.FindByStockNumber(ctx, stoneStockNumber)
		if err != nil {
			return nil, fmt.Errorf("diamond %q not found: %w", stoneStockNumber, err)
		}
		quote.StoneStock = stoneStockNumber
		quote.StonePrice = diamond.Price
	}

	quote.TotalPrice = TotalPrice(quote.MetalPrice, quote.StonePrice)
	return quote, nil
}

func (s *VariantService) GetDYOVariant(ctx context.Context, productSKU string) (*models.DYOVariant, error) {
	return s.variants.FindDYOVariant(ctx, productSKU)
}
