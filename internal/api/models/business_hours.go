package models

// BusinessHours holds one row per (business, day_of_week) pair. Days run
// 0 (Sunday) through 6 (Saturday).
type BusinessHours struct {
	ID         int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	BusinessID int64  `json:"-" gorm:"not null;index"`
	DayOfWeek  int    `json:"day_of_week" gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	IsClosed   bool   `json:"is_closed" gorm:"default:false"`
}

func (BusinessHours) TableName() string {
	return "business_hours"
}
