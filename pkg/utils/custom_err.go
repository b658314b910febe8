package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	// ErrSyncFailed means derived accommodation items could not be rebuilt;
	// callers should reload the itinerary and verify its days.
	ErrSyncFailed = errors.New("accommodation sync failed")

	ErrItineraryExists       = fmt.Errorf("itinerary already exists for project: %w", ErrConflict)
	ErrItineraryNotFound     = fmt.Errorf("itinerary %w", ErrNotFound)
	ErrDayNotFound           = fmt.Errorf("itinerary day %w", ErrNotFound)
	ErrItemNotFound          = fmt.Errorf("itinerary item %w", ErrNotFound)
	ErrAccommodationNotFound = fmt.Errorf("accommodation %w", ErrNotFound)
	ErrFlightNotFound        = fmt.Errorf("flight %w", ErrNotFound)
	ErrPlaceNotFound         = fmt.Errorf("place %w", ErrNotFound)
)

// ValidationError carries the offending field back to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
