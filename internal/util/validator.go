package util

import (
	"fmt"
	"time"
)

// ValidateAmountCents checks a monetary value in centavos (non-negative,
// bounded).
func ValidateAmountCents(cents int64) error {
	if cents < 0 {
		return fmt.Errorf("amount must not be negative, got %d", cents)
	}
	if cents >= 1_000_000_000 { // R$ 10 million cap
		return fmt.Errorf("amount too large, got %d", cents)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateClock checks an HH:MM time-of-day string. Empty is allowed:
// a blank schedule slot means the shop is closed.
func ValidateClock(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("invalid time format: %w", err)
	}
	return nil
}

// ValidateFrequency checks a recurrence frequency value.
func ValidateFrequency(freq string) error {
	switch freq {
	case "daily", "weekly", "monthly", "yearly":
		return nil
	}
	return fmt.Errorf("invalid recurrence frequency %q", freq)
}
