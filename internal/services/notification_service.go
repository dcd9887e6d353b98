package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"sharedesk/internal/mail"
	"sharedesk/internal/models"
	"sharedesk/internal/repositories"
)

const (
	DefaultNotifyConcurrency = 4

	openingSubject = "A spot has opened up!"
	openingBody    = "A spot has opened up in the space you wanted. Book it now!\n\n%s, %s (%d available)"

	availabilityUpdated  = "Space availability updated"
	availabilityNotified = "Space availability updated and notifications sent"

	EventAvailability = "availability"
)

// Publisher receives every committed capacity change; the websocket hub
// implements it.
type Publisher interface {
	Publish(event models.AvailabilityEvent)
}

type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
	SpaceRepo        *repositories.SpaceRepository
	Mailer           mail.Sender
	Publisher        Publisher
	Logger           Logger
	Concurrency      int
}

// IsSubscribed reports whether the user asked to hear about openings in the space.
func (s *NotificationService) IsSubscribed(ctx context.Context, spaceID int, userID string) (bool, error) {
	pref := models.NotificationPreference{SpaceID: spaceID, UserID: userID}
	if err := pref.Validate(false); err != nil {
		return false, err
	}
	_, err := s.NotificationRepo.GetPreference(ctx, spaceID, userID)
	if errors.Is(err, models.ErrPreferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *NotificationService) Subscribe(ctx context.Context, pref models.NotificationPreference) (models.NotificationPreference, error) {
	if err := pref.Validate(true); err != nil {
		return models.NotificationPreference{}, err
	}
	if _, err := s.SpaceRepo.GetSpaceByID(ctx, pref.SpaceID); err != nil {
		return models.NotificationPreference{}, err
	}
	return s.NotificationRepo.UpsertPreference(ctx, pref)
}

func (s *NotificationService) Unsubscribe(ctx context.Context, spaceID int, userID string) error {
	pref := models.NotificationPreference{SpaceID: spaceID, UserID: userID}
	if err := pref.Validate(false); err != nil {
		return err
	}
	return s.NotificationRepo.DeletePreference(ctx, spaceID, userID)
}

// UpdateAvailability stores the new capacity, tells websocket listeners and,
// when a spot is free, emails every subscriber of the space. Each subscriber
// whose email went out is unsubscribed; failed sends keep their preference
// for the next opening.
func (s *NotificationService) UpdateAvailability(ctx context.Context, spaceID, capacity, callerID int) (models.AvailabilityResult, error) {
	space, err := s.SpaceRepo.GetSpaceByID(ctx, spaceID)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	if err := checkOwner(space, callerID); err != nil {
		return models.AvailabilityResult{}, err
	}
	if err := models.ValidateCapacity(capacity, space.MaxCapacity); err != nil {
		return models.AvailabilityResult{}, err
	}
	if err := s.SpaceRepo.UpdateAvailableCapacity(ctx, spaceID, capacity); err != nil {
		return models.AvailabilityResult{}, err
	}
	space.AvailableCapacity = capacity

	if s.Publisher != nil {
		s.Publisher.Publish(models.AvailabilityEvent{
			Type:              EventAvailability,
			SpaceID:           spaceID,
			AvailableCapacity: capacity,
		})
	}

	if capacity == 0 {
		return models.AvailabilityResult{Message: availabilityUpdated}, nil
	}

	prefs, err := s.NotificationRepo.GetPreferencesBySpace(ctx, spaceID)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	notified, failed := s.notifyAll(ctx, space, prefs)
	return models.AvailabilityResult{
		Message:  availabilityNotified,
		Notified: notified,
		Failed:   failed,
	}, nil
}

func (s *NotificationService) notifyAll(ctx context.Context, space models.Space, prefs []models.NotificationPreference) (int, int) {
	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultNotifyConcurrency
	}

	var notified, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(limit)
	for _, pref := range prefs {
		g.Go(func() error {
			msg := models.EmailMessage{
				To:      pref.Email,
				Subject: openingSubject,
				Body:    fmt.Sprintf(openingBody, space.Name, space.City, space.AvailableCapacity),
			}
			if err := s.Mailer.Send(ctx, msg); err != nil {
				failed.Add(1)
				s.Logger.Errorf("notify %s about space %d: %v", pref.Email, space.ID, err)
				return nil
			}
			notified.Add(1)
			if err := s.NotificationRepo.DeletePreferenceByID(ctx, pref.ID); err != nil {
				s.Logger.Errorf("clear preference %d after notifying: %v", pref.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	s.Logger.Infof("space %d opening: notified=%d failed=%d", space.ID, notified.Load(), failed.Load())
	return int(notified.Load()), int(failed.Load())
}
