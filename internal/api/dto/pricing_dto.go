package dto

import (
	"time"

	"bizdir/internal/api/models"
	"bizdir/internal/api/repository"
	"bizdir/internal/pricing"
)

type ServicePricingResponse struct {
	ServiceName      string    `json:"service_name"`
	CurrentPrice     float64   `json:"current_price"`
	RecommendedPrice float64   `json:"recommended_price"`
	PricingStrategy  string    `json:"pricing_strategy"`
	ConfidenceScore  float64   `json:"confidence_score"`
	LastUpdated      time.Time `json:"last_updated"`
}

func FromModelToServicePricingResponse(p models.ServicePricing) ServicePricingResponse {
	return ServicePricingResponse{
		ServiceName:      p.ServiceName,
		CurrentPrice:     p.CurrentPrice,
		RecommendedPrice: p.RecommendedPrice,
		PricingStrategy:  p.PricingStrategy,
		ConfidenceScore:  p.ConfidenceScore,
		LastUpdated:      p.LastUpdated,
	}
}

type PricingAnalysisResponse struct {
	BusinessID            int64                    `json:"business_id"`
	MarketPosition        string                   `json:"market_position"`
	RevenuePotentialScore float64                  `json:"revenue_potential_score"`
	Summary               string                   `json:"summary"`
	Services              []ServicePricingResponse `json:"services"`
	Source                string                   `json:"source"` // "ai" or "fallback"
}

type DynamicPricingDTO struct {
	Enabled       bool    `json:"enabled"`
	Strategy      string  `json:"strategy"`
	MinMultiplier float64 `json:"min_multiplier"`
	MaxMultiplier float64 `json:"max_multiplier"`
}

type PriceHistoryResponse struct {
	BusinessID int64                    `json:"business_id"`
	History    []ServicePricingResponse `json:"history"`
}

type RecommendationsResponse struct {
	Recommendations []pricing.ServiceRecommendation `json:"recommendations"`
	BusinessInfo    BusinessInfo                    `json:"business_info"`
	Source          string                          `json:"source"`
}

type BusinessInfo struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Services    string             `json:"services"`
	Location    string             `json:"location"`
	Socials     models.SocialLinks `json:"socials"`
}

type MarketComparisonResponse struct {
	Category string                   `json:"category"`
	Location string                   `json:"location,omitempty"`
	Services []repository.MarketStats `json:"services"`
}
