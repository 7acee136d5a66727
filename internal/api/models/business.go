package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SocialLinks maps a platform name ("instagram", "website", "phone", ...) to
// its value. Stored as a JSON text column; (de)serialization happens here at
// the store boundary so the rest of the code works with a typed map.
type SocialLinks map[string]string

func (s SocialLinks) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*s = SocialLinks{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for socials: %T", value)
	}
	if len(data) == 0 {
		*s = SocialLinks{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// PricingConfig holds the per-business dynamic pricing settings, stored as a
// JSON text column.
type PricingConfig struct {
	Enabled       bool    `json:"enabled"`
	Strategy      string  `json:"strategy,omitempty"`
	MinMultiplier float64 `json:"min_multiplier,omitempty"`
	MaxMultiplier float64 `json:"max_multiplier,omitempty"`
}

func (p PricingConfig) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PricingConfig) Scan(value interface{}) error {
	if value == nil {
		*p = PricingConfig{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for pricing config: %T", value)
	}
	if len(data) == 0 {
		*p = PricingConfig{}
		return nil
	}
	return json.Unmarshal(data, p)
}

type Business struct {
	ID          int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"not null;index"`
	Category    string   `json:"category" gorm:"not null;index"`
	Description string   `json:"description" gorm:"type:text"`
	Services    string   `json:"services" gorm:"type:text"`
	Location    string   `json:"location" gorm:"index"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ImageURL    string   `json:"image_url"`

	// Rating and TotalReviews are derived from the reviews table. They are
	// written only by the rating aggregation in the review service and the
	// cleanup utility, never by business updates.
	Rating       float64 `json:"rating" gorm:"default:0"`
	TotalReviews int64   `json:"totalReviews" gorm:"default:0"`

	Socials SocialLinks `json:"socials" gorm:"type:text"`
	OwnerID *string     `json:"owner_id,omitempty" gorm:"type:uuid;index"`

	MarketPosition        string        `json:"market_position" gorm:"default:'competitive'"`
	RevenuePotentialScore float64       `json:"revenue_potential_score" gorm:"default:0.7"`
	DynamicPricingConfig  PricingConfig `json:"dynamic_pricing_config" gorm:"type:text"`

	// Associations
	Owner   *User             `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;"`
	Images  []BusinessImage   `json:"images,omitempty" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
	Hours   []BusinessHours   `json:"hours,omitempty" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
	Pricing []ServicePricing  `json:"service_pricing,omitempty" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
}

func (Business) TableName() string {
	return "businesses"
}
