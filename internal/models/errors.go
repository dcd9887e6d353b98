package models

import (
	"errors"
)

var (
	ErrSpaceNotFound      = errors.New("models: space not found")
	ErrRentalNotFound     = errors.New("models: rental not found")
	ErrPreferenceNotFound = errors.New("models: notification preference not found")
	ErrImageNotFound      = errors.New("models: image not found")
)

var (
	ErrMissingField        = errors.New("models: required field missing")
	ErrFieldTooLong        = errors.New("models: field too long")
	ErrNegativeValue       = errors.New("models: value must not be negative")
	ErrCapacityExceeded    = errors.New("models: available capacity exceeds maximum capacity")
	ErrInvalidPeriod       = errors.New("models: rental period end precedes start")
	ErrInvalidStatus       = errors.New("models: invalid rental status")
	ErrUnsupportedImage    = errors.New("models: unsupported image type")
	ErrForbidden           = errors.New("models: caller does not own the space")
	ErrDuplicatePreference = errors.New("models: duplicate notification preference")
)

// IsValidation reports whether err is caused by bad client input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingField,
		ErrFieldTooLong,
		ErrNegativeValue,
		ErrCapacityExceeded,
		ErrInvalidPeriod,
		ErrInvalidStatus,
		ErrUnsupportedImage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
