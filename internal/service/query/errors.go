package query

import (
	"errors"
)

var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrCourtNotFound    = errors.New("court not found")
	ErrInvalidDay       = errors.New("invalid weekday")
)
