package repository

import (
	"context"
	"errors"

	"bizdir/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOwnerReview is returned when a user tries to review a business they own.
var ErrOwnerReview = errors.New("owner cannot review own business")

type ReviewRepository interface {
	CreateWithRecalc(ctx context.Context, review *models.Review) error
	GetByBusiness(ctx context.Context, businessID int64, page, pageSize int) ([]models.Review, int64, error)
	AverageAndCount(ctx context.Context, businessID int64) (float64, int64, error)
	CountOwnerReviews(ctx context.Context) (int64, error)
	DeleteOwnerReviews(ctx context.Context) (int64, error)
	RecalcBusinessRating(ctx context.Context, businessID int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateWithRecalc inserts a review and recomputes the owning business's
// derived rating and review count, all inside one transaction. The ownership
// guard runs in the same transaction so an owner change between check and
// insert cannot slip a self-review through; on postgres the business row is
// locked, which also serializes concurrent recalculations for one business.
func (r *reviewRepository) CreateWithRecalc(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bizQuery := tx
		if tx.Dialector.Name() == "postgres" {
			bizQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var biz models.Business
		if err := bizQuery.Select("id", "owner_id").First(&biz, review.BusinessID).Error; err != nil {
			return err
		}
		if biz.OwnerID != nil && *biz.OwnerID == review.UserID {
			return ErrOwnerReview
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		return recalcRating(tx, review.BusinessID)
	})
}

func (r *reviewRepository) GetByBusiness(ctx context.Context, businessID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Review{}).Where("business_id = ?", businessID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Where("business_id = ?", businessID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// AverageAndCount computes the live average (rounded to one decimal) and the
// review count for a business.
func (r *reviewRepository) AverageAndCount(ctx context.Context, businessID int64) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(ROUND(AVG(rating), 1), 0) AS average, COUNT(*) AS total").
		Where("business_id = ?", businessID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Average, row.Total, nil
}

// CountOwnerReviews reports how many reviews were written by the owner of
// the reviewed business.
func (r *reviewRepository) CountOwnerReviews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Joins("JOIN businesses ON businesses.id = reviews.business_id").
		Where("reviews.user_id = businesses.owner_id").
		Count(&count).Error
	return count, err
}

// DeleteOwnerReviews removes every review authored by the owner of the
// reviewed business, then recomputes the derived stats of every business that
// had such a review. Businesses left with zero reviews are explicitly reset
// to rating 0 rather than keeping a stale average.
func (r *reviewRepository) DeleteOwnerReviews(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var affected []int64
		err := tx.Model(&models.Review{}).
			Joins("JOIN businesses ON businesses.id = reviews.business_id").
			Where("reviews.user_id = businesses.owner_id").
			Distinct().
			Pluck("reviews.business_id", &affected).Error
		if err != nil {
			return err
		}
		if len(affected) == 0 {
			return nil
		}

		res := tx.Exec(`DELETE FROM reviews WHERE id IN (
			SELECT r.id FROM reviews r
			JOIN businesses b ON b.id = r.business_id
			WHERE r.user_id = b.owner_id)`)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		for _, id := range affected {
			if err := recalcRating(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	return deleted, err
}

// RecalcBusinessRating recomputes the derived stats for one business outside
// any surrounding write.
func (r *reviewRepository) RecalcBusinessRating(ctx context.Context, businessID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recalcRating(tx, businessID)
	})
}

// recalcRating persists rating = round(avg, 1) and total_reviews for one
// business. The COALESCE makes the zero-review case an explicit reset to 0.
func recalcRating(tx *gorm.DB, businessID int64) error {
	return tx.Exec(`UPDATE businesses SET
			rating = COALESCE((SELECT ROUND(AVG(rating), 1) FROM reviews WHERE business_id = ?), 0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE business_id = ?)
		WHERE id = ?`,
		businessID, businessID, businessID).Error
}
