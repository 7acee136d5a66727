package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/handler"
	"bizdir/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, userID, remoteAddr string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, remoteAddr, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) GetByBusiness(ctx context.Context, businessID int64, page, pageSize int) (*dto.PaginatedReviewsResponse, error) {
	args := m.Called(ctx, businessID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewsResponse), args.Error(1)
}

func (m *MockReviewService) Average(ctx context.Context, businessID int64) (*dto.AverageRatingResponse, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AverageRatingResponse), args.Error(1)
}

// --- SETUP ---

func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("email", "test@example.com")
		c.Next()
	}
}

func setupReviewRouter(mockService *MockReviewService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReviewHandler(mockService)

	public := r.Group("/api")
	authed := r.Group("/api")
	if userID != "" {
		authed.Use(mockAuthMiddleware(userID))
	}
	h.RegisterRoutes(public, authed)
	return r
}

func TestCreateReview_Created(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-1")

	resp := &dto.ReviewResponse{ID: 1, BusinessID: 7, Rating: 4, Text: "really enjoyed this place"}
	mockService.On("Create", mock.Anything, "user-1", mock.Anything, mock.AnythingOfType("dto.CreateReviewDTO")).
		Return(resp, nil)

	body, _ := json.Marshal(dto.CreateReviewDTO{BusinessID: 7, Rating: 4, Text: "really enjoyed this place"})
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got dto.ReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	mockService.AssertExpectations(t)
}

func TestCreateReview_MissingBody(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestCreateReview_OwnerForbidden(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "owner-1")

	mockService.On("Create", mock.Anything, "owner-1", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: business owners cannot review their own business", service.ErrPermissionDenied))

	body, _ := json.Marshal(dto.CreateReviewDTO{BusinessID: 7, Rating: 5, Text: "my place is the best"})
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListReviews_DefaultPagination(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "")

	resp := &dto.PaginatedReviewsResponse{
		Reviews:    []dto.ReviewResponse{},
		Pagination: dto.Pagination{Page: 1, Limit: 20},
	}
	mockService.On("GetByBusiness", mock.Anything, int64(7), 1, 20).Return(resp, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListReviews_BadID(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAverage_NotFound(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "")

	mockService.On("Average", mock.Anything, int64(999)).
		Return(nil, fmt.Errorf("%w: business", service.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/average/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAverage_OK(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "")

	mockService.On("Average", mock.Anything, int64(7)).
		Return(&dto.AverageRatingResponse{AverageRating: 4.5, TotalReviews: 2, BusinessID: 7}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/average/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got dto.AverageRatingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Equal(t, int64(2), got.TotalReviews)
}
