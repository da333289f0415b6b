package domain

import (
	"fmt"
	"strings"
	"time"
)

// FarmLog is one season entry in a farmer's logbook: what was sown, when,
// what it cost and what it earned.
type FarmLog struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"-"`
	CropName            string    `json:"crop_name"`
	SowingDate          time.Time `json:"sowing_date"`
	ExpectedHarvestDate time.Time `json:"expected_harvest_date,omitzero"`
	MoneySpent          float64   `json:"money_spent"`
	MoneyEarned         float64   `json:"money_earned"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Validate checks the entry before it is persisted.
func (l FarmLog) Validate() error {
	if strings.TrimSpace(l.CropName) == "" {
		return fmt.Errorf("%w: crop name is required", ErrInvalidQuery)
	}
	if l.SowingDate.IsZero() {
		return fmt.Errorf("%w: sowing date is required", ErrInvalidQuery)
	}
	if l.MoneySpent < 0 || l.MoneyEarned < 0 {
		return fmt.Errorf("%w: money amounts cannot be negative", ErrInvalidQuery)
	}
	return nil
}

// HarvestFromDuration derives an expected harvest date when the farmer gives
// a crop duration in days instead of a date.
func HarvestFromDuration(sowing time.Time, durationDays int) time.Time {
	return sowing.AddDate(0, 0, durationDays)
}

// Profit is earnings net of spend for the entry.
func (l FarmLog) Profit() float64 {
	return l.MoneyEarned - l.MoneySpent
}
