package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/models"
	"bizdir/internal/api/repository"
	"bizdir/internal/pricing"

	"gorm.io/gorm"
)

type PricingService interface {
	Analysis(ctx context.Context, userID string, businessID int64) (*dto.PricingAnalysisResponse, error)
	SetDynamicPricing(ctx context.Context, userID string, businessID int64, req dto.DynamicPricingDTO) error
	History(ctx context.Context, businessID int64) (*dto.PriceHistoryResponse, error)
	Recommendations(ctx context.Context, userID string, businessID int64) (*dto.RecommendationsResponse, error)
	MarketComparison(ctx context.Context, category, location string, excludeBusinessID int64) (*dto.MarketComparisonResponse, error)
}

type pricingService struct {
	pricingRepo  *repository.PricingRepo
	businessRepo *repository.BusinessRepo
	businessSvc  BusinessService
	advisor      pricing.Client
	fallback     pricing.Client
	logger       *slog.Logger
}

func NewPricingService(
	pricingRepo *repository.PricingRepo,
	businessRepo *repository.BusinessRepo,
	businessSvc BusinessService,
	advisor pricing.Client,
	logger *slog.Logger,
) PricingService {
	return &pricingService{
		pricingRepo:  pricingRepo,
		businessRepo: businessRepo,
		businessSvc:  businessSvc,
		advisor:      advisor,
		fallback:     pricing.NewStatic(),
		logger:       logger,
	}
}

func profileOf(b *models.Business) pricing.BusinessProfile {
	return pricing.BusinessProfile{
		Name:        b.Name,
		Category:    b.Category,
		Description: b.Description,
		Services:    b.Services,
		Location:    b.Location,
	}
}

// Analysis asks the external advisor for a pricing review and persists the
// recommended prices. When the advisor fails or times out the static
// fallback answers instead, so the endpoint never depends on upstream
// availability.
func (s *pricingService) Analysis(ctx context.Context, userID string, businessID int64) (*dto.PricingAnalysisResponse, error) {
	if err := s.businessSvc.EnsureOwner(ctx, userID, businessID); err != nil {
		return nil, err
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	current, err := s.pricingRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	prices := make([]pricing.ServicePrice, 0, len(current))
	for _, p := range current {
		prices = append(prices, pricing.ServicePrice{ServiceName: p.ServiceName, CurrentPrice: p.CurrentPrice})
	}

	source := "ai"
	analysis, err := s.advisor.AnalyzePricing(ctx, profileOf(business), prices)
	if err != nil {
		s.logger.Warn("pricing advisor unavailable, using fallback", "business_id", businessID, "error", err)
		source = "fallback"
		analysis, err = s.fallback.AnalyzePricing(ctx, profileOf(business), prices)
		if err != nil {
			return nil, err
		}
	}

	currentByName := make(map[string]float64, len(current))
	for _, p := range current {
		currentByName[p.ServiceName] = p.CurrentPrice
	}

	rows := make([]models.ServicePricing, 0, len(analysis.Suggestions))
	for _, sug := range analysis.Suggestions {
		rows = append(rows, models.ServicePricing{
			BusinessID:       businessID,
			ServiceName:      sug.ServiceName,
			CurrentPrice:     currentByName[sug.ServiceName],
			RecommendedPrice: sug.RecommendedPrice,
			PricingStrategy:  sug.PricingStrategy,
			ConfidenceScore:  sug.ConfidenceScore,
		})
	}
	if err := s.pricingRepo.Upsert(ctx, rows); err != nil {
		return nil, err
	}

	if err := s.businessRepo.UpdateFields(ctx, businessID, map[string]interface{}{
		"market_position":         analysis.MarketPosition,
		"revenue_potential_score": analysis.RevenuePotentialScore,
	}); err != nil {
		return nil, err
	}

	updated, err := s.pricingRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	services := make([]dto.ServicePricingResponse, 0, len(updated))
	for _, p := range updated {
		services = append(services, dto.FromModelToServicePricingResponse(p))
	}

	return &dto.PricingAnalysisResponse{
		BusinessID:            businessID,
		MarketPosition:        analysis.MarketPosition,
		RevenuePotentialScore: analysis.RevenuePotentialScore,
		Summary:               analysis.Summary,
		Services:              services,
		Source:                source,
	}, nil
}

func (s *pricingService) SetDynamicPricing(ctx context.Context, userID string, businessID int64, req dto.DynamicPricingDTO) error {
	if err := s.businessSvc.EnsureOwner(ctx, userID, businessID); err != nil {
		return err
	}
	if req.Enabled && req.MinMultiplier > req.MaxMultiplier {
		return fmt.Errorf("%w: min_multiplier must not exceed max_multiplier", ErrValidation)
	}

	cfg := models.PricingConfig{
		Enabled:       req.Enabled,
		Strategy:      req.Strategy,
		MinMultiplier: req.MinMultiplier,
		MaxMultiplier: req.MaxMultiplier,
	}
	return s.businessRepo.UpdateFields(ctx, businessID, map[string]interface{}{
		"dynamic_pricing_config": cfg,
	})
}

func (s *pricingService) History(ctx context.Context, businessID int64) (*dto.PriceHistoryResponse, error) {
	if _, err := s.businessRepo.OwnerID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business", ErrNotFound)
		}
		return nil, err
	}

	rows, err := s.pricingRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	history := make([]dto.ServicePricingResponse, 0, len(rows))
	for _, p := range rows {
		history = append(history, dto.FromModelToServicePricingResponse(p))
	}
	return &dto.PriceHistoryResponse{BusinessID: businessID, History: history}, nil
}

func (s *pricingService) Recommendations(ctx context.Context, userID string, businessID int64) (*dto.RecommendationsResponse, error) {
	if err := s.businessSvc.EnsureOwner(ctx, userID, businessID); err != nil {
		return nil, err
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	source := "ai"
	recs, err := s.advisor.RecommendServices(ctx, profileOf(business))
	if err != nil {
		s.logger.Warn("recommendation advisor unavailable, using fallback", "business_id", businessID, "error", err)
		source = "fallback"
		recs, err = s.fallback.RecommendServices(ctx, profileOf(business))
		if err != nil {
			return nil, err
		}
	}

	return &dto.RecommendationsResponse{
		Recommendations: recs,
		BusinessInfo: dto.BusinessInfo{
			Name:        business.Name,
			Category:    business.Category,
			Description: business.Description,
			Services:    business.Services,
			Location:    business.Location,
			Socials:     business.Socials,
		},
		Source: source,
	}, nil
}

func (s *pricingService) MarketComparison(ctx context.Context, category, location string, excludeBusinessID int64) (*dto.MarketComparisonResponse, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	stats, err := s.pricingRepo.MarketComparison(ctx, category, location, excludeBusinessID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []repository.MarketStats{}
	}
	return &dto.MarketComparisonResponse{
		Category: category,
		Location: location,
		Services: stats,
	}, nil
}
