package models

import "time"

// BusinessHours holds the weekly operating schedule, one row per user.
// Times are "HH:MM" strings; an empty pair means the shop is closed that
// day. CrossMidnight makes end-before-start shifts span midnight instead of
// counting as zero.
type BusinessHours struct {
	ID     string `gorm:"primaryKey;size:36"`
	UserID uint   `gorm:"uniqueIndex;not null"`

	MondayOpen     string `gorm:"size:5"`
	MondayClose    string `gorm:"size:5"`
	TuesdayOpen    string `gorm:"size:5"`
	TuesdayClose   string `gorm:"size:5"`
	WednesdayOpen  string `gorm:"size:5"`
	WednesdayClose string `gorm:"size:5"`
	ThursdayOpen   string `gorm:"size:5"`
	ThursdayClose  string `gorm:"size:5"`
	FridayOpen     string `gorm:"size:5"`
	FridayClose    string `gorm:"size:5"`
	SaturdayOpen   string `gorm:"size:5"`
	SaturdayClose  string `gorm:"size:5"`
	SundayOpen     string `gorm:"size:5"`
	SundayClose    string `gorm:"size:5"`

	LunchBreakMinutes int  `gorm:"default:60"`
	CrossMidnight     bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
