package models

import "time"

// Stored payment statuses. "open" is never stored: it is the display label
// of a virtual (never-paid) obligation produced by the reconciliation.
const (
	StatusPending       = "pending"
	StatusPaid          = "paid"
	StatusOverdue       = "overdue"
	StatusCancelled     = "cancelled"
	StatusPartiallyPaid = "partially_paid"
)

// CostPayment is a realized (full or partial) payment against an obligation.
// Description and original amount are copied from the cost at creation time:
// a payment is an immutable snapshot of the obligation at the moment it was
// paid, so it survives deletion of the cost definition.
type CostPayment struct {
	ID                  string    `gorm:"primaryKey;size:36"`
	UserID              uint      `gorm:"index;not null"`
	OperationalCostID   *string   `gorm:"index;size:36"` // nullable back-reference
	Description         string    `gorm:"size:255;not null"`
	DueDate             time.Time `gorm:"index;not null"`
	AmountOriginalCents int64     `gorm:"not null"`
	AmountPaidCents     *int64
	PaymentDate         *time.Time
	Status              string `gorm:"size:16;index;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
