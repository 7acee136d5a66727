package models

import "time"

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BusinessID int64     `json:"businessId" gorm:"not null;index"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Text       string    `json:"text" gorm:"not null;type:text"`
	IPAddress  string    `json:"-" gorm:"column:ip_address"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`

	// Associations
	User     User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Business Business `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
