package repository

import (
	"context"
	"fmt"

	"bizdir/internal/api/models"

	"gorm.io/gorm"
)

type ImageRepo struct {
	db *gorm.DB
}

func NewImageRepo(db *gorm.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

func (r *ImageRepo) Create(ctx context.Context, img *models.BusinessImage) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return fmt.Errorf("create business image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetByBusiness(ctx context.Context, businessID int64) ([]models.BusinessImage, error) {
	var images []models.BusinessImage
	if err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Order("id").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepo) GetByID(ctx context.Context, businessID, imageID int64) (*models.BusinessImage, error) {
	var img models.BusinessImage
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", imageID, businessID).
		First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepo) Delete(ctx context.Context, imageID int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.BusinessImage{}, imageID).Error; err != nil {
		return fmt.Errorf("delete business image: %w", err)
	}
	return nil
}
