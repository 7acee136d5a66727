package models

import "time"

type ServicePricing struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BusinessID       int64     `json:"business_id" gorm:"not null;uniqueIndex:idx_pricing_business_service"`
	ServiceName      string    `json:"service_name" gorm:"not null;uniqueIndex:idx_pricing_business_service"`
	CurrentPrice     float64   `json:"current_price"`
	RecommendedPrice float64   `json:"recommended_price"`
	PricingStrategy  string    `json:"pricing_strategy"`
	ConfidenceScore  float64   `json:"confidence_score" gorm:"default:0.8"`
	LastUpdated      time.Time `json:"last_updated" gorm:"autoUpdateTime"`
}

func (ServicePricing) TableName() string {
	return "service_pricing"
}
