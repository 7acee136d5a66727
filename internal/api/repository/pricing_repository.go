package repository

import (
	"context"
	"fmt"

	"bizdir/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingRepo struct {
	db *gorm.DB
}

func NewPricingRepo(db *gorm.DB) *PricingRepo {
	return &PricingRepo{db: db}
}

func (r *PricingRepo) GetByBusiness(ctx context.Context, businessID int64) ([]models.ServicePricing, error) {
	var rows []models.ServicePricing
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("service_name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes one recommendation row per (business, service), updating the
// recommendation columns when the service already has a row.
func (r *PricingRepo) Upsert(ctx context.Context, rows []models.ServicePricing) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "service_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_price", "recommended_price", "pricing_strategy", "confidence_score", "last_updated",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert service pricing: %w", err)
	}
	return nil
}

// MarketStats is the aggregated pricing picture for one service name within
// a market segment.
type MarketStats struct {
	ServiceName  string  `json:"service_name"`
	AveragePrice float64 `json:"average_price" gorm:"column:average_price"`
	MinPrice     float64 `json:"min_price" gorm:"column:min_price"`
	MaxPrice     float64 `json:"max_price" gorm:"column:max_price"`
	Providers    int64   `json:"providers" gorm:"column:providers"`
}

// MarketComparison aggregates service pricing across businesses in a
// category/location segment. excludeBusinessID removes the requesting
// business from its own comparison; pass 0 to include everything.
func (r *PricingRepo) MarketComparison(ctx context.Context, category, location string, excludeBusinessID int64) ([]MarketStats, error) {
	q := r.db.WithContext(ctx).Model(&models.ServicePricing{}).
		Select("service_pricing.service_name, "+
			"AVG(service_pricing.current_price) AS average_price, "+
			"MIN(service_pricing.current_price) AS min_price, "+
			"MAX(service_pricing.current_price) AS max_price, "+
			"COUNT(DISTINCT service_pricing.business_id) AS providers").
		Joins("JOIN businesses ON businesses.id = service_pricing.business_id").
		Where("businesses.category = ?", category).
		Group("service_pricing.service_name").
		Order("service_pricing.service_name")
	if location != "" {
		q = q.Where("businesses.location = ?", location)
	}
	if excludeBusinessID != 0 {
		q = q.Where("service_pricing.business_id <> ?", excludeBusinessID)
	}

	var rows []MarketStats
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("market comparison: %w", err)
	}
	return rows, nil
}
