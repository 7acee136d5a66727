package repository

import (
	"context"
	"fmt"

	"bizdir/internal/api/models"

	"gorm.io/gorm"
)

type BusinessRepo struct {
	db *gorm.DB
}

func NewBusinessRepo(db *gorm.DB) *BusinessRepo {
	return &BusinessRepo{db: db}
}

// Create inserts the business together with its hours and service pricing
// rows in one transaction.
func (r *BusinessRepo) Create(ctx context.Context, b *models.Business, hours []models.BusinessHours, pricing []models.ServicePricing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("create business: %w", err)
		}
		for i := range hours {
			hours[i].BusinessID = b.ID
		}
		if len(hours) > 0 {
			if err := tx.Create(&hours).Error; err != nil {
				return fmt.Errorf("create business hours: %w", err)
			}
		}
		for i := range pricing {
			pricing[i].BusinessID = b.ID
		}
		if len(pricing) > 0 {
			if err := tx.Create(&pricing).Error; err != nil {
				return fmt.Errorf("create service pricing: %w", err)
			}
		}
		return nil
	})
}

func (r *BusinessRepo) GetByID(ctx context.Context, id int64) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Hours", func(db *gorm.DB) *gorm.DB { return db.Order("day_of_week") }).
		Preload("Pricing").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetAll lists businesses, optionally restricted to one category.
func (r *BusinessRepo) GetAll(ctx context.Context, category string) ([]models.Business, error) {
	var list []models.Business
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateFields applies a partial update. The caller is responsible for
// restricting the column set; rating and total_reviews must never pass
// through here.
func (r *BusinessRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// OwnerID returns the owner reference for a business, nil when unowned.
func (r *BusinessRepo) OwnerID(ctx context.Context, id int64) (*string, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).Select("id", "owner_id").First(&b, id).Error; err != nil {
		return nil, err
	}
	return b.OwnerID, nil
}

// Categories returns the distinct category values across all businesses.
func (r *BusinessRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.db.WithContext(ctx).Model(&models.Business{}).
		Distinct("category").Order("category").Pluck("category", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Locations returns the distinct location values across all businesses.
func (r *BusinessRepo) Locations(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.db.WithContext(ctx).Model(&models.Business{}).
		Distinct("location").Order("location").Pluck("location", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// RatingRange returns the globally observed review rating bounds, defaulting
// to 0/5 when there are no reviews at all.
func (r *BusinessRepo) RatingRange(ctx context.Context) (float64, float64, error) {
	var row struct {
		Min float64
		Max float64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(MIN(rating), 0) AS min, COALESCE(MAX(rating), 5) AS max").
		Scan(&row).Error
	if err != nil {
		return 0, 5, err
	}
	return row.Min, row.Max, nil
}
