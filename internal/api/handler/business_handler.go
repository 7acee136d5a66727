package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/service"

	"github.com/gin-gonic/gin"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type BusinessHandler struct {
	businessService service.BusinessService
	uploadDir       string
	uploadMaxSize   int64
}

func NewBusinessHandler(businessService service.BusinessService, uploadDir string, uploadMaxSize int64) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		uploadDir:       uploadDir,
		uploadMaxSize:   uploadMaxSize,
	}
}

// RegisterRoutes registers business routes on the public and authenticated
// route groups.
func (h *BusinessHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/businesses", h.List)
	public.GET("/businesses/:id", h.GetByID)
	public.GET("/businesses/:id/hours", h.GetHours)
	public.GET("/businesses/:id/images", h.GetImages)

	authed.POST("/businesses", h.Create)
	authed.PATCH("/businesses/:id", h.Update)
	authed.GET("/businesses/:id/owner-check", h.IsOwner)
	authed.POST("/businesses/:id/hours", h.SetHours)
	authed.POST("/businesses/:id/images", h.UploadImage)
	authed.DELETE("/businesses/:id/images/:imageId", h.DeleteImage)
}

func businessIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return 0, false
	}
	return id, true
}

// List returns all businesses, optionally filtered by category
// GET /api/businesses?category=...
func (h *BusinessHandler) List(c *gin.Context) {
	businesses, err := h.businessService.GetAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// GetByID returns one business with its images, hours and pricing
// GET /api/businesses/:id
func (h *BusinessHandler) GetByID(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	business, err := h.businessService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// Create registers a new business owned by the authenticated user
// POST /api/businesses
func (h *BusinessHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateBusinessDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.businessService.Create(c.Request.Context(), userID.(string), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

// Update applies a partial update to a business the user owns
// PATCH /api/businesses/:id
func (h *BusinessHandler) Update(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.UpdateBusinessDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.businessService.Update(c.Request.Context(), userID.(string), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business updated successfully"})
}

// IsOwner reports whether the authenticated user owns the business
// GET /api/businesses/:id/owner-check
func (h *BusinessHandler) IsOwner(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	isOwner, err := h.businessService.IsOwner(c.Request.Context(), userID.(string), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OwnerCheckResponse{IsOwner: isOwner})
}

// GetHours returns the weekly schedule for a business
// GET /api/businesses/:id/hours
func (h *BusinessHandler) GetHours(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	hours, err := h.businessService.GetHours(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": hours})
}

// SetHours replaces the weekly schedule for a business the user owns
// POST /api/businesses/:id/hours
func (h *BusinessHandler) SetHours(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.SetHoursDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.businessService.SetHours(c.Request.Context(), userID.(string), id, req.Hours); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hours updated successfully"})
}

// GetImages returns the gallery for a business
// GET /api/businesses/:id/images
func (h *BusinessHandler) GetImages(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	images, err := h.businessService.GetImages(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

// UploadImage stores an uploaded file and records it in the gallery
// POST /api/businesses/:id/images (multipart form, field "image")
func (h *BusinessHandler) UploadImage(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.businessService.EnsureOwner(c.Request.Context(), userID.(string), id); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > h.uploadMaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%d_%d%s", id, time.Now().UnixNano(), ext)
	dst := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, err)
		return
	}

	imageURL := "/uploads/" + filename
	image, err := h.businessService.AddImage(c.Request.Context(), id, imageURL)
	if err != nil {
		os.Remove(dst)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// DeleteImage removes a gallery entry and its file
// DELETE /api/businesses/:id/images/:imageId
func (h *BusinessHandler) DeleteImage(c *gin.Context) {
	id, ok := businessIDParam(c)
	if !ok {
		return
	}

	imageID, err := strconv.ParseInt(c.Param("imageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	imageURL, err := h.businessService.RemoveImage(c.Request.Context(), userID.(string), id, imageID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Best effort: the row is gone even if the file was already missing.
	if name := strings.TrimPrefix(imageURL, "/uploads/"); name != imageURL && name != "" {
		os.Remove(filepath.Join(h.uploadDir, filepath.Base(name)))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
