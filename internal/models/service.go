package models

import "time"

// Service is one entry of the shop's service catalog.
// Prices are stored in centavos to avoid float drift, e.g. R$ 150,00 = 15000.
type Service struct {
	ID               string `gorm:"primaryKey;size:36"`
	UserID           uint   `gorm:"index;not null"`
	Name             string `gorm:"size:128;not null"`
	Description      string `gorm:"type:text"`
	PriceCents       int64  `gorm:"not null"`
	EstimatedMinutes int    `gorm:"default:0"`
	Active           bool   `gorm:"index;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
