package repository

import (
	"context"
	"fmt"

	"bizdir/internal/api/models"

	"gorm.io/gorm"
)

type HoursRepo struct {
	db *gorm.DB
}

func NewHoursRepo(db *gorm.DB) *HoursRepo {
	return &HoursRepo{db: db}
}

func (r *HoursRepo) GetByBusiness(ctx context.Context, businessID int64) ([]models.BusinessHours, error) {
	var hours []models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("day_of_week").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// Replace swaps the full weekly schedule for a business in one transaction.
func (r *HoursRepo) Replace(ctx context.Context, businessID int64, hours []models.BusinessHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", businessID).Delete(&models.BusinessHours{}).Error; err != nil {
			return fmt.Errorf("clear business hours: %w", err)
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].BusinessID = businessID
		}
		if err := tx.Create(&hours).Error; err != nil {
			return fmt.Errorf("insert business hours: %w", err)
		}
		return nil
	})
}
