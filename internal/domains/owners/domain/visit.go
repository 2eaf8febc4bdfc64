package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrBlankVisitDescription = errors.New("visit description is required")

// Visit is a clinic appointment recorded against a pet.
type Visit struct {
	ID          int64
	Date        time.Time
	Description string
}

// NewVisit validates the invariants and builds a Visit, keeping the date
// date-only in UTC.
func NewVisit(date time.Time, description string) (Visit, error) {
	if strings.TrimSpace(description) == "" {
		return Visit{}, ErrBlankVisitDescription
	}
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return Visit{Date: normalized, Description: description}, nil
}
