package pricing

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Static is the deterministic fallback advisor. It mirrors the defaults the
// platform used before the external advisor existed: competitive positioning,
// a 0.7 revenue potential and a modest upward nudge on prices.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (s *Static) AnalyzePricing(_ context.Context, profile BusinessProfile, prices []ServicePrice) (*Analysis, error) {
	suggestions := make([]PriceSuggestion, 0, len(prices))
	for _, p := range prices {
		suggestions = append(suggestions, PriceSuggestion{
			ServiceName:      p.ServiceName,
			RecommendedPrice: math.Round(p.CurrentPrice*1.1*100) / 100,
			PricingStrategy:  "competitive",
			ConfidenceScore:  0.8,
		})
	}
	return &Analysis{
		MarketPosition:        "competitive",
		RevenuePotentialScore: 0.7,
		Summary: fmt.Sprintf("%s is positioned competitively in the %s segment; a moderate price increase is sustainable.",
			profile.Name, profile.Category),
		Suggestions: suggestions,
	}, nil
}

func (s *Static) RecommendServices(_ context.Context, profile BusinessProfile) ([]ServiceRecommendation, error) {
	category := strings.ToLower(profile.Category)
	recs, ok := staticRecommendations[categoryKey(category)]
	if !ok {
		recs = staticRecommendations["default"]
	}
	out := make([]ServiceRecommendation, len(recs))
	copy(out, recs)
	for i := range out {
		out[i].Category = profile.Category
	}
	return out, nil
}

func categoryKey(category string) string {
	switch {
	case strings.Contains(category, "beauty"), strings.Contains(category, "spa"), strings.Contains(category, "wellness"):
		return "beauty"
	case strings.Contains(category, "restaurant"), strings.Contains(category, "cafe"), strings.Contains(category, "food"):
		return "food"
	case strings.Contains(category, "fitness"), strings.Contains(category, "health"), strings.Contains(category, "sport"):
		return "fitness"
	default:
		return "default"
	}
}

var staticRecommendations = map[string][]ServiceRecommendation{
	"beauty": {
		{ServiceName: "Bridal packages", Description: "Bundled hair, makeup and nail services for weddings", EstimatedPriceRange: "150-400", Reasoning: "Bundles raise the average order value in beauty businesses"},
		{ServiceName: "Loyalty membership", Description: "Monthly membership with a discounted treatment", EstimatedPriceRange: "30-80", Reasoning: "Recurring revenue smooths seasonal demand"},
	},
	"food": {
		{ServiceName: "Catering", Description: "Off-site catering for events and offices", EstimatedPriceRange: "10-25 per person", Reasoning: "Uses existing kitchen capacity during slow hours"},
		{ServiceName: "Weekend brunch menu", Description: "A dedicated brunch offering on weekends", EstimatedPriceRange: "8-20", Reasoning: "Brunch attracts a different customer segment"},
	},
	"fitness": {
		{ServiceName: "Personal training", Description: "One-on-one coached sessions", EstimatedPriceRange: "25-60 per session", Reasoning: "Premium add-on with high margins"},
		{ServiceName: "Online classes", Description: "Streamed group classes for remote members", EstimatedPriceRange: "5-15 per class", Reasoning: "Extends reach beyond the physical location"},
	},
	"default": {
		{ServiceName: "Gift cards", Description: "Prepaid gift cards redeemable for any service", EstimatedPriceRange: "10-100", Reasoning: "Low-effort upfront revenue suitable for any business"},
		{ServiceName: "Referral program", Description: "Discount for customers who bring new clients", EstimatedPriceRange: "free", Reasoning: "Cheap customer acquisition through existing clients"},
	},
}
