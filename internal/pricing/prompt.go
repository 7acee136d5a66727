package pricing

import (
	"fmt"
	"strings"
)

func buildAnalysisPrompt(profile BusinessProfile, prices []ServicePrice) string {
	var sb strings.Builder
	sb.WriteString("You are a pricing consultant for small local businesses.\n")
	fmt.Fprintf(&sb, "Business: %s\nCategory: %s\nLocation: %s\nDescription: %s\n",
		profile.Name, profile.Category, profile.Location, profile.Description)
	sb.WriteString("Current service prices:\n")
	for _, p := range prices {
		fmt.Fprintf(&sb, "- %s: %.2f\n", p.ServiceName, p.CurrentPrice)
	}
	sb.WriteString(`Respond with JSON only, matching this shape exactly:
{"market_position": "budget|competitive|premium",
 "revenue_potential_score": 0.0,
 "summary": "...",
 "suggestions": [{"service_name": "...", "recommended_price": 0.0,
   "pricing_strategy": "...", "confidence_score": 0.0}]}`)
	return sb.String()
}

func buildRecommendationsPrompt(profile BusinessProfile) string {
	var sb strings.Builder
	sb.WriteString("You are a business development consultant.\n")
	fmt.Fprintf(&sb, "Business: %s\nCategory: %s\nLocation: %s\nDescription: %s\nExisting services:\n%s\n",
		profile.Name, profile.Category, profile.Location, profile.Description, profile.Services)
	sb.WriteString(`Suggest up to 5 additional services. Respond with JSON only:
{"recommendations": [{"service_name": "...", "description": "...",
  "category": "...", "estimated_price_range": "...", "reasoning": "..."}]}`)
	return sb.String()
}
