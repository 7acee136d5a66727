package models

import "time"

type BusinessImage struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BusinessID int64     `json:"business_id" gorm:"not null;index"`
	ImageURL   string    `json:"image_url" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (BusinessImage) TableName() string {
	return "business_images"
}
