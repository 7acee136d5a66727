package dto

import (
	"bizdir/internal/api/models"
)

// HoursDTO mirrors one business_hours row on the wire.
type HoursDTO struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

// ServicePricingInput carries per-service pricing supplied on business
// creation, keyed by service name in the request body.
type ServicePricingInput struct {
	CurrentPrice     float64 `json:"current_price"`
	RecommendedPrice float64 `json:"recommended_price"`
	PricingStrategy  string  `json:"pricing_strategy"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// CreateBusinessDTO used for POST /businesses
type CreateBusinessDTO struct {
	Name           string                         `json:"name" binding:"required"`
	Category       string                         `json:"category" binding:"required"`
	Description    string                         `json:"description" binding:"required"`
	Services       string                         `json:"services" binding:"required"`
	Location       string                         `json:"location"`
	ImageURL       string                         `json:"image_url"`
	Socials        models.SocialLinks             `json:"socials"`
	ServicePricing map[string]ServicePricingInput `json:"service_pricing"`
	Hours          []HoursDTO                     `json:"hours"`
}

// UpdateBusinessDTO used for PATCH /businesses/:id (partial updates allowed).
// Rating and review count are derived attributes and deliberately absent.
type UpdateBusinessDTO struct {
	Name        *string             `json:"name,omitempty"`
	Category    *string             `json:"category,omitempty"`
	Description *string             `json:"description,omitempty"`
	Services    *string             `json:"services,omitempty"`
	ImageURL    *string             `json:"image_url,omitempty"`
	Location    *string             `json:"location,omitempty"`
	Socials     *models.SocialLinks `json:"socials,omitempty"`
}

// Fields returns the column set for a partial update.
func (d UpdateBusinessDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Category != nil {
		fields["category"] = *d.Category
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.Services != nil {
		fields["services"] = *d.Services
	}
	if d.ImageURL != nil {
		fields["image_url"] = *d.ImageURL
	}
	if d.Location != nil {
		fields["location"] = *d.Location
	}
	if d.Socials != nil {
		fields["socials"] = *d.Socials
	}
	return fields
}

func (d HoursDTO) ToModel() models.BusinessHours {
	return models.BusinessHours{
		DayOfWeek: d.DayOfWeek,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
		IsClosed:  d.IsClosed,
	}
}

func FromModelToHoursDTO(h models.BusinessHours) HoursDTO {
	return HoursDTO{
		DayOfWeek: h.DayOfWeek,
		OpenTime:  h.OpenTime,
		CloseTime: h.CloseTime,
		IsClosed:  h.IsClosed,
	}
}

type SetHoursDTO struct {
	Hours []HoursDTO `json:"hours" binding:"required"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type OwnerCheckResponse struct {
	IsOwner bool `json:"isOwner"`
}
