package handler

import (
	"net/http"
	"strconv"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/service"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService service.PricingService
}

func NewPricingHandler(pricingService service.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// RegisterRoutes registers pricing routes. Analysis, recommendations and the
// dynamic pricing config are owner-only; history and market comparison are
// public.
func (h *PricingHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/businesses/:id/price-history", h.History)
	public.GET("/market/price-comparison", h.MarketComparison)

	authed.GET("/businesses/:id/pricing-analysis", h.Analysis)
	authed.POST("/businesses/:id/dynamic-pricing", h.SetDynamicPricing)
	authed.GET("/businesses/:id/ai-recommendations", h.Recommendations)
}

// Analysis runs a pricing analysis and stores the recommended prices
// GET /api/businesses/:id/pricing-analysis
func (h *PricingHandler) Analysis(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	analysis, err := h.pricingService.Analysis(c.Request.Context(), userID.(string), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// SetDynamicPricing stores the dynamic pricing configuration
// POST /api/businesses/:id/dynamic-pricing
func (h *PricingHandler) SetDynamicPricing(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.DynamicPricingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pricingService.SetDynamicPricing(c.Request.Context(), userID.(string), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dynamic pricing configuration saved"})
}

// History returns the stored pricing rows for a business
// GET /api/businesses/:id/price-history
func (h *PricingHandler) History(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	history, err := h.pricingService.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Recommendations suggests additional services for a business
// GET /api/businesses/:id/ai-recommendations
func (h *PricingHandler) Recommendations(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recs, err := h.pricingService.Recommendations(c.Request.Context(), userID.(string), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// MarketComparison returns aggregate service pricing across a market segment
// GET /api/market/price-comparison?category=&location=&business_id=
func (h *PricingHandler) MarketComparison(c *gin.Context) {
	var excludeID int64
	if raw := c.Query("business_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
			return
		}
		excludeID = id
	}

	result, err := h.pricingService.MarketComparison(
		c.Request.Context(), c.Query("category"), c.Query("location"), excludeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
