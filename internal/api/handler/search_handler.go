package handler

import (
	"net/http"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// RegisterRoutes registers the public search and discovery routes.
func (h *SearchHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/businesses/search", h.Search)
	public.GET("/businesses/filter-options", h.FilterOptions)
	public.GET("/search-suggestions", h.Suggestions)
}

// Search runs a faceted business search
// GET /api/businesses/search?q=&category=&location=&minRating=&maxRating=&sortBy=&sortOrder=&page=&limit=
func (h *SearchHandler) Search(c *gin.Context) {
	var query dto.SearchQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FilterOptions returns the facet values currently present in the directory
// GET /api/businesses/filter-options
func (h *SearchHandler) FilterOptions(c *gin.Context) {
	options, err := h.searchService.FilterOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// Suggestions returns typeahead completions for a partial query
// GET /api/search-suggestions?q=...
func (h *SearchHandler) Suggestions(c *gin.Context) {
	result, err := h.searchService.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
