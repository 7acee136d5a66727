package service

import (
	"context"
	"testing"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/models"
	"bizdir/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateWithRecalc(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByBusiness(ctx context.Context, businessID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, businessID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AverageAndCount(ctx context.Context, businessID int64) (float64, int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) CountOwnerReviews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) DeleteOwnerReviews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) RecalcBusinessRating(ctx context.Context, businessID int64) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

func TestCreateReview_Success(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewReviewService(mockRepo, nil)

	mockRepo.On("CreateWithRecalc", mock.Anything, mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 42
		}).
		Return(nil)

	resp, err := svc.Create(context.Background(), "user-1", "203.0.113.9", dto.CreateReviewDTO{
		BusinessID: 7,
		Name:       "  Alex  ",
		Rating:     4,
		Text:       "Great service, would come back again.",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.BusinessID)
	assert.Equal(t, "Alex", resp.Name)
	assert.Equal(t, 4, resp.Rating)
	mockRepo.AssertExpectations(t)
}

func TestCreateReview_Validation(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewReviewService(mockRepo, nil)

	cases := []struct {
		name string
		req  dto.CreateReviewDTO
	}{
		{"missing business", dto.CreateReviewDTO{Rating: 4, Text: "long enough review text"}},
		{"rating too low", dto.CreateReviewDTO{BusinessID: 1, Rating: 0, Text: "long enough review text"}},
		{"rating too high", dto.CreateReviewDTO{BusinessID: 1, Rating: 6, Text: "long enough review text"}},
		{"text too short", dto.CreateReviewDTO{BusinessID: 1, Rating: 4, Text: "too short"}},
		{"text only whitespace", dto.CreateReviewDTO{BusinessID: 1, Rating: 4, Text: "             "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", "", tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	mockRepo.AssertNotCalled(t, "CreateWithRecalc")
}

func TestCreateReview_OwnerForbidden(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewReviewService(mockRepo, nil)

	mockRepo.On("CreateWithRecalc", mock.Anything, mock.AnythingOfType("*models.Review")).
		Return(repository.ErrOwnerReview)

	_, err := svc.Create(context.Background(), "owner-1", "", dto.CreateReviewDTO{
		BusinessID: 7,
		Rating:     5,
		Text:       "trying to review my own place",
	})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateReview_BusinessMissing(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewReviewService(mockRepo, nil)

	mockRepo.On("CreateWithRecalc", mock.Anything, mock.AnythingOfType("*models.Review")).
		Return(gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), "user-1", "", dto.CreateReviewDTO{
		BusinessID: 999,
		Rating:     5,
		Text:       "review for a business that is gone",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}
