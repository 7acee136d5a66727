// Package pricing talks to an external language-model API for pricing
// analysis and service recommendations. All calls are context-bounded; the
// Static client provides deterministic results when no API key is configured
// or the external call fails.
package pricing

import (
	"context"
)

// BusinessProfile is the slice of a business the advisor reasons about.
type BusinessProfile struct {
	Name        string
	Category    string
	Description string
	Services    string
	Location    string
}

// ServicePrice is one currently priced service of the business.
type ServicePrice struct {
	ServiceName  string
	CurrentPrice float64
}

// PriceSuggestion is the advisor's output for one service.
type PriceSuggestion struct {
	ServiceName      string  `json:"service_name"`
	RecommendedPrice float64 `json:"recommended_price"`
	PricingStrategy  string  `json:"pricing_strategy"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// Analysis is a full pricing review of a business.
type Analysis struct {
	MarketPosition        string            `json:"market_position"`
	RevenuePotentialScore float64           `json:"revenue_potential_score"`
	Summary               string            `json:"summary"`
	Suggestions           []PriceSuggestion `json:"suggestions"`
}

// ServiceRecommendation proposes a new service the business could offer.
type ServiceRecommendation struct {
	ServiceName         string `json:"service_name"`
	Description         string `json:"description"`
	Category            string `json:"category"`
	EstimatedPriceRange string `json:"estimated_price_range"`
	Reasoning           string `json:"reasoning"`
}

type Client interface {
	AnalyzePricing(ctx context.Context, profile BusinessProfile, prices []ServicePrice) (*Analysis, error)
	RecommendServices(ctx context.Context, profile BusinessProfile) ([]ServiceRecommendation, error)
}
