package models

import "time"

// Client represents a customer of the shop.
type Client struct {
	ID        string `gorm:"primaryKey;size:36"` // UUID
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:128;not null"`
	Phone     string `gorm:"size:32"`
	Email     string `gorm:"size:128"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// Vehicle belongs to a client.
type Vehicle struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index;not null"`
	ClientID  string `gorm:"index;size:36;not null"`
	Plate     string `gorm:"size:16"`
	Make      string `gorm:"size:64"`
	Model     string `gorm:"size:64"`
	Year      int
	Color     string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Client Client `gorm:"constraint:OnDelete:CASCADE"`
}
