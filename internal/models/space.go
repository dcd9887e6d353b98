package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type Space struct {
	ID                int     `json:"spaceID"`
	Name              string  `json:"name"`
	City              string  `json:"city"`
	Price             float64 `json:"price"`
	MaxCapacity       int     `json:"maxCapacity"`
	AvailableCapacity int     `json:"availableCapacity"`
	Description       string  `json:"description"`
	Address           string  `json:"address"`
	RenterUserID      int     `json:"renterUserId"`
	ContactNumber     string  `json:"contactNumber"`
	Benefits          string  `json:"benefits"`
}

// BenefitList splits the comma separated benefits column, dropping blanks.
func (s Space) BenefitList() []string {
	var out []string
	for _, b := range strings.Split(s.Benefits, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// FullyBooked is true when nobody else can join the space.
func (s Space) FullyBooked() bool {
	return s.AvailableCapacity == 0
}

// Validate checks the column limits of the spaces table and the capacity invariant.
func (s Space) Validate() error {
	required := []struct {
		name  string
		value string
		max   int
	}{
		{"name", s.Name, 100},
		{"city", s.City, 100},
		{"address", s.Address, 50},
		{"contactNumber", s.ContactNumber, 20},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, f.name, f.max)
		}
	}
	if s.RenterUserID == 0 {
		return fmt.Errorf("%w: renterUserId", ErrMissingField)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price", ErrNegativeValue)
	}
	return ValidateCapacity(s.AvailableCapacity, s.MaxCapacity)
}

func ValidateCapacity(available, max int) error {
	if available < 0 || max < 0 {
		return fmt.Errorf("%w: capacity", ErrNegativeValue)
	}
	if available > max {
		return fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, available, max)
	}
	return nil
}

// SpaceInput is the body of create and update requests. Edited form fields
// arrive as strings, hence the flexible number types.
type SpaceInput struct {
	Name              string    `json:"name"`
	City              string    `json:"city"`
	Price             FlexFloat `json:"price"`
	MaxCapacity       FlexInt   `json:"maxCapacity"`
	AvailableCapacity FlexInt   `json:"availableCapacity"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	RenterUserID      FlexInt   `json:"renterUserId"`
	ContactNumber     string    `json:"contactNumber"`
	Benefits          string    `json:"benefits"`
}

func (in SpaceInput) ToSpace(id int) Space {
	return Space{
		ID:                id,
		Name:              strings.TrimSpace(in.Name),
		City:              strings.TrimSpace(in.City),
		Price:             float64(in.Price),
		MaxCapacity:       int(in.MaxCapacity),
		AvailableCapacity: int(in.AvailableCapacity),
		Description:       in.Description,
		Address:           strings.TrimSpace(in.Address),
		RenterUserID:      int(in.RenterUserID),
		ContactNumber:     strings.TrimSpace(in.ContactNumber),
		Benefits:          in.Benefits,
	}
}

type SpaceImage struct {
	ID          int       `json:"imageID"`
	SpaceID     int       `json:"spaceID"`
	Path        string    `json:"path"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SpacePage is one page of a browse query.
type SpacePage struct {
	Spaces     []Space `json:"spaces"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	Total      int     `json:"total"`
}
