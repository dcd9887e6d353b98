package models

import (
	"fmt"
	"strings"
)

type NotificationPreference struct {
	ID      int    `json:"id"`
	SpaceID int    `json:"spaceId"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
}

type NotifyRequest struct {
	SpaceID FlexInt    `json:"spaceId"`
	UserID  FlexString `json:"userId"`
	Email   string     `json:"email"`
}

func (r NotifyRequest) Preference() NotificationPreference {
	return NotificationPreference{
		SpaceID: int(r.SpaceID),
		UserID:  string(r.UserID),
		Email:   strings.TrimSpace(r.Email),
	}
}

func (p NotificationPreference) Validate(requireEmail bool) error {
	if p.SpaceID == 0 {
		return fmt.Errorf("%w: spaceId", ErrMissingField)
	}
	if p.UserID == "" {
		return fmt.Errorf("%w: userId", ErrMissingField)
	}
	if requireEmail && p.Email == "" {
		return fmt.Errorf("%w: email", ErrMissingField)
	}
	return nil
}

type UpdateAvailabilityRequest struct {
	SpaceID     FlexInt `json:"spaceId"`
	NewCapacity FlexInt `json:"newCapacity"`
}

// AvailabilityResult reports what an availability update triggered.
type AvailabilityResult struct {
	Message  string `json:"message"`
	Notified int    `json:"notified"`
	Failed   int    `json:"failed"`
}

// AvailabilityEvent is pushed to websocket listeners of a space.
type AvailabilityEvent struct {
	Type              string `json:"type"`
	SpaceID           int    `json:"spaceId"`
	AvailableCapacity int    `json:"availableCapacity"`
}

type EmailMessage struct {
	To      string
	Subject string
	Body    string
}
