package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/models"
	"bizdir/internal/api/repository"

	"gorm.io/gorm"
)

const minReviewTextLength = 10

type ReviewService interface {
	Create(ctx context.Context, userID, remoteAddr string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	GetByBusiness(ctx context.Context, businessID int64, page, pageSize int) (*dto.PaginatedReviewsResponse, error)
	Average(ctx context.Context, businessID int64) (*dto.AverageRatingResponse, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo *repository.BusinessRepo
}

func NewReviewService(reviewRepo repository.ReviewRepository, businessRepo *repository.BusinessRepo) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
	}
}

// Create validates and stores a review. The repository performs the owner
// guard and the rating recalculation inside one transaction, so the derived
// rating on the business is already up to date when this returns.
func (s *reviewService) Create(ctx context.Context, userID, remoteAddr string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId is required", ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if len(strings.TrimSpace(req.Text)) < minReviewTextLength {
		return nil, fmt.Errorf("%w: review text must be at least %d characters", ErrValidation, minReviewTextLength)
	}

	review := &models.Review{
		BusinessID: req.BusinessID,
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		Rating:     req.Rating,
		Text:       strings.TrimSpace(req.Text),
		IPAddress:  remoteAddr,
	}

	if err := s.reviewRepo.CreateWithRecalc(ctx, review); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: business", ErrNotFound)
		case errors.Is(err, repository.ErrOwnerReview):
			return nil, fmt.Errorf("%w: business owners cannot review their own business", ErrPermissionDenied)
		default:
			return nil, err
		}
	}

	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) GetByBusiness(ctx context.Context, businessID int64, page, pageSize int) (*dto.PaginatedReviewsResponse, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business", ErrNotFound)
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByBusiness(ctx, businessID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, dto.FromModelToReviewResponse(&reviews[i]))
	}

	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.PaginatedReviewsResponse{
		Reviews: responses,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: pageSize,
			Total: total,
			Pages: pages,
		},
	}, nil
}

func (s *reviewService) Average(ctx context.Context, businessID int64) (*dto.AverageRatingResponse, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business", ErrNotFound)
		}
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageAndCount(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return &dto.AverageRatingResponse{
		AverageRating: avg,
		TotalReviews:  count,
		BusinessID:    businessID,
	}, nil
}
