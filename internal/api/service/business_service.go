package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/models"
	"bizdir/internal/api/repository"
	"bizdir/internal/cache"
	"bizdir/internal/geo"

	"gorm.io/gorm"
)

type BusinessService interface {
	Create(ctx context.Context, ownerID string, req dto.CreateBusinessDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Business, error)
	GetAll(ctx context.Context, category string) ([]models.Business, error)
	Update(ctx context.Context, userID string, id int64, req dto.UpdateBusinessDTO) error
	IsOwner(ctx context.Context, userID string, id int64) (bool, error)
	EnsureOwner(ctx context.Context, userID string, id int64) error
	GetHours(ctx context.Context, id int64) ([]dto.HoursDTO, error)
	SetHours(ctx context.Context, userID string, id int64, hours []dto.HoursDTO) error
	GetImages(ctx context.Context, id int64) ([]models.BusinessImage, error)
	AddImage(ctx context.Context, businessID int64, imageURL string) (*models.BusinessImage, error)
	RemoveImage(ctx context.Context, userID string, businessID, imageID int64) (string, error)
}

type businessService struct {
	businessRepo *repository.BusinessRepo
	imageRepo    *repository.ImageRepo
	hoursRepo    *repository.HoursRepo
	geocoder     geo.Geocoder
	filterCache  *cache.FilterCache
	logger       *slog.Logger
}

func NewBusinessService(
	businessRepo *repository.BusinessRepo,
	imageRepo *repository.ImageRepo,
	hoursRepo *repository.HoursRepo,
	geocoder geo.Geocoder,
	filterCache *cache.FilterCache,
	logger *slog.Logger,
) BusinessService {
	return &businessService{
		businessRepo: businessRepo,
		imageRepo:    imageRepo,
		hoursRepo:    hoursRepo,
		geocoder:     geocoder,
		filterCache:  filterCache,
		logger:       logger,
	}
}

func (s *businessService) Create(ctx context.Context, ownerID string, req dto.CreateBusinessDTO) (int64, error) {
	business := &models.Business{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Services:    req.Services,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Socials:     req.Socials,
		OwnerID:     &ownerID,
	}
	if business.Socials == nil {
		business.Socials = models.SocialLinks{}
	}

	// Best-effort geocoding: a failed lookup never blocks creation.
	if req.Location != "" {
		lat, lng, err := s.geocoder.Geocode(ctx, req.Location)
		if err != nil {
			s.logger.Warn("geocoding failed", "location", req.Location, "error", err)
		} else {
			business.Latitude = lat
			business.Longitude = lng
		}
	}

	hours := make([]models.BusinessHours, 0, len(req.Hours))
	for _, h := range req.Hours {
		// Rows outside the 0..6 day range are dropped, not rejected.
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			continue
		}
		hours = append(hours, h.ToModel())
	}

	pricing := make([]models.ServicePricing, 0, len(req.ServicePricing))
	for name, p := range req.ServicePricing {
		recommended := p.RecommendedPrice
		if recommended == 0 {
			recommended = p.CurrentPrice
		}
		strategy := p.PricingStrategy
		if strategy == "" {
			strategy = "competitive"
		}
		confidence := p.ConfidenceScore
		if confidence == 0 {
			confidence = 0.8
		}
		pricing = append(pricing, models.ServicePricing{
			ServiceName:      name,
			CurrentPrice:     p.CurrentPrice,
			RecommendedPrice: recommended,
			PricingStrategy:  strategy,
			ConfidenceScore:  confidence,
		})
	}

	if err := s.businessRepo.Create(ctx, business, hours, pricing); err != nil {
		return 0, err
	}

	// A new business may introduce a new category or location.
	s.filterCache.Invalidate(ctx)

	return business.ID, nil
}

func (s *businessService) GetByID(ctx context.Context, id int64) (*models.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business", ErrNotFound)
		}
		return nil, err
	}
	return business, nil
}

func (s *businessService) GetAll(ctx context.Context, category string) ([]models.Business, error) {
	return s.businessRepo.GetAll(ctx, category)
}

func (s *businessService) Update(ctx context.Context, userID string, id int64, req dto.UpdateBusinessDTO) error {
	if err := s.EnsureOwner(ctx, userID, id); err != nil {
		return err
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return nil
	}

	// Re-geocode when the location changes.
	if loc, ok := fields["location"].(string); ok && loc != "" {
		lat, lng, err := s.geocoder.Geocode(ctx, loc)
		if err != nil {
			s.logger.Warn("geocoding failed", "location", loc, "error", err)
		} else {
			fields["latitude"] = lat
			fields["longitude"] = lng
		}
	}

	if err := s.businessRepo.UpdateFields(ctx, id, fields); err != nil {
		return err
	}
	s.filterCache.Invalidate(ctx)
	return nil
}

func (s *businessService) IsOwner(ctx context.Context, userID string, id int64) (bool, error) {
	ownerID, err := s.businessRepo.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: business", ErrNotFound)
		}
		return false, err
	}
	return ownerID != nil && *ownerID == userID, nil
}

// EnsureOwner fails with PermissionDenied unless userID owns the business.
func (s *businessService) EnsureOwner(ctx context.Context, userID string, id int64) error {
	isOwner, err := s.IsOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if !isOwner {
		return fmt.Errorf("%w: only the business owner may do this", ErrPermissionDenied)
	}
	return nil
}

func (s *businessService) GetHours(ctx context.Context, id int64) ([]dto.HoursDTO, error) {
	if _, err := s.businessRepo.OwnerID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business", ErrNotFound)
		}
		return nil, err
	}

	hours, err := s.hoursRepo.GetByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HoursDTO, 0, len(hours))
	for _, h := range hours {
		out = append(out, dto.FromModelToHoursDTO(h))
	}
	return out, nil
}

func (s *businessService) SetHours(ctx context.Context, userID string, id int64, hours []dto.HoursDTO) error {
	if err := s.EnsureOwner(ctx, userID, id); err != nil {
		return err
	}

	rows := make([]models.BusinessHours, 0, len(hours))
	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week must be between 0 and 6", ErrValidation)
		}
		rows = append(rows, h.ToModel())
	}
	return s.hoursRepo.Replace(ctx, id, rows)
}

func (s *businessService) GetImages(ctx context.Context, id int64) ([]models.BusinessImage, error) {
	return s.imageRepo.GetByBusiness(ctx, id)
}

func (s *businessService) AddImage(ctx context.Context, businessID int64, imageURL string) (*models.BusinessImage, error) {
	img := &models.BusinessImage{
		BusinessID: businessID,
		ImageURL:   imageURL,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// RemoveImage deletes the image row and returns the stored URL so the caller
// can remove the file from disk.
func (s *businessService) RemoveImage(ctx context.Context, userID string, businessID, imageID int64) (string, error) {
	if err := s.EnsureOwner(ctx, userID, businessID); err != nil {
		return "", err
	}

	img, err := s.imageRepo.GetByID(ctx, businessID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: image", ErrNotFound)
		}
		return "", err
	}
	if err := s.imageRepo.Delete(ctx, img.ID); err != nil {
		return "", err
	}
	return img.ImageURL, nil
}
