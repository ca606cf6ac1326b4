package models

import "time"

// Cost classification.
const (
	CostTypeFixed    = "fixed"
	CostTypeVariable = "variable"
)

// Recurrence frequencies for recurring costs.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// OperationalCost is a declared expense obligation (fixed or variable,
// one-off or one materialized occurrence of a recurring series).
// Values are stored in centavos.
type OperationalCost struct {
	ID                  string     `gorm:"primaryKey;size:36"`
	UserID              uint       `gorm:"index;not null"`
	Description         string     `gorm:"size:255;not null"`
	ValueCents          int64      `gorm:"not null"` // >= 0
	CostType            string     `gorm:"size:16;index;not null"`
	ExpenseDate         *time.Time `gorm:"index"`
	IsRecurring         bool       `gorm:"default:false"`
	RecurrenceFrequency string     `gorm:"size:16"` // set iff IsRecurring
	RecurrenceEndDate   *time.Time
	Category            string `gorm:"size:64"` // empty groups under "Outros"
	CreatedAt           time.Time
	UpdatedAt           time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
