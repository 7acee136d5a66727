package dto

import (
	"time"

	"bizdir/internal/api/models"
)

// CreateReviewDTO used for POST /reviews. Rating and text bounds are
// revalidated in the service so the error taxonomy stays consistent.
type CreateReviewDTO struct {
	BusinessID int64  `json:"businessId" binding:"required"`
	Name       string `json:"name"`
	Rating     int    `json:"rating" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

type ReviewResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	Name       string    `json:"name,omitempty"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		Name:       r.Name,
		Rating:     r.Rating,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt,
	}
}

type PaginatedReviewsResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
}

type AverageRatingResponse struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
	BusinessID    int64   `json:"businessId"`
}
