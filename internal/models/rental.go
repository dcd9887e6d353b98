package models

import (
	"fmt"
	"strings"
	"time"
)

type RentalStatus string

const (
	RentalPending  RentalStatus = "pending"
	RentalApproved RentalStatus = "approved"
	RentalRejected RentalStatus = "rejected"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalPending, RentalApproved, RentalRejected:
		return true
	}
	return false
}

type Rental struct {
	ID             int          `json:"rentalID"`
	SpaceID        int          `json:"spaceID"`
	UserID         string       `json:"userId"`
	Email          string       `json:"email,omitempty"`
	StartDate      Date         `json:"startDate"`
	EndDate        Date         `json:"endDate"`
	CustomPrice    float64      `json:"customPrice"`
	RentalApproval RentalStatus `json:"rentalApproval"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// RentalRequest is the body of POST /api/Rental.
type RentalRequest struct {
	SpaceID     FlexInt    `json:"spaceID"`
	UserID      FlexString `json:"userId"`
	Email       string     `json:"email"`
	StartDate   Date       `json:"startDate"`
	EndDate     Date       `json:"endDate"`
	CustomPrice FlexFloat  `json:"customPrice"`
}

func (r RentalRequest) Validate() error {
	if r.SpaceID == 0 {
		return fmt.Errorf("%w: spaceID", ErrMissingField)
	}
	if strings.TrimSpace(string(r.UserID)) == "" {
		return fmt.Errorf("%w: userId", ErrMissingField)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate/endDate", ErrMissingField)
	}
	if r.EndDate.Before(r.StartDate.Time) {
		return ErrInvalidPeriod
	}
	if r.CustomPrice < 0 {
		return fmt.Errorf("%w: customPrice", ErrNegativeValue)
	}
	return nil
}

func (r RentalRequest) ToRental() Rental {
	return Rental{
		SpaceID:        int(r.SpaceID),
		UserID:         string(r.UserID),
		Email:          strings.TrimSpace(r.Email),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		CustomPrice:    float64(r.CustomPrice),
		RentalApproval: RentalPending,
	}
}

// RentalFilter narrows GET /api/Rental/GetRentals; zero values match everything.
type RentalFilter struct {
	SpaceID int
	UserID  string
	Status  RentalStatus
}
