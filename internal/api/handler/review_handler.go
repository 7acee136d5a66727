package handler

import (
	"net/http"
	"strconv"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers review routes. Reading reviews is public; posting
// one requires authentication.
func (h *ReviewHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/reviews/:businessId", h.List)
	public.GET("/reviews/average/:businessId", h.GetAverage)
	authed.POST("/reviews", h.Create)
}

// Create submits a review for a business
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID.(string), c.ClientIP(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// List retrieves reviews for a business with pagination
// GET /api/reviews/:businessId?page=1&page_size=20
func (h *ReviewHandler) List(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("businessId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, err := h.reviewService.GetByBusiness(c.Request.Context(), businessID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetAverage retrieves the average rating and review count for a business
// GET /api/reviews/average/:businessId
func (h *ReviewHandler) GetAverage(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("businessId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	avg, err := h.reviewService.Average(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avg)
}
