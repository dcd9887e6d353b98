package services

import (
	"context"
	"fmt"
	"strconv"

	"sharedesk/internal/mail"
	"sharedesk/internal/models"
	"sharedesk/internal/pricing"
	"sharedesk/internal/repositories"
)

const (
	approvalSubject = "Your rental has been approved"
	approvalBody    = "Your rental request for %s from %s to %s has been approved. Total price: %.2f."
)

type RentalService struct {
	RentalRepo *repositories.RentalRepository
	SpaceRepo  *repositories.SpaceRepository
	Mailer     mail.Sender
	Logger     Logger
}

// CreateRental records a pending request. A zero custom price is filled in
// from the monthly price of the space.
func (s *RentalService) CreateRental(ctx context.Context, req models.RentalRequest) (models.Rental, error) {
	if err := req.Validate(); err != nil {
		return models.Rental{}, err
	}
	space, err := s.SpaceRepo.GetSpaceByID(ctx, int(req.SpaceID))
	if err != nil {
		return models.Rental{}, err
	}

	rental := req.ToRental()
	if rental.CustomPrice == 0 {
		price, err := pricing.CustomPrice(space.Price, rental.StartDate.Time, rental.EndDate.Time)
		if err != nil {
			return models.Rental{}, models.ErrInvalidPeriod
		}
		rental.CustomPrice = price
	}
	return s.RentalRepo.CreateRental(ctx, rental)
}

func (s *RentalService) GetRentalByID(ctx context.Context, id int) (models.Rental, error) {
	return s.RentalRepo.GetRentalByID(ctx, id)
}

func (s *RentalService) GetRentals(ctx context.Context, filter models.RentalFilter) ([]models.Rental, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, models.ErrInvalidStatus
	}
	if filter.SpaceID != 0 {
		if _, err := s.SpaceRepo.GetSpaceByID(ctx, filter.SpaceID); err != nil {
			return nil, err
		}
	}
	return s.RentalRepo.GetRentals(ctx, filter)
}

// ApproveRental marks the rental approved and emails the requester. A failed
// email is logged; the approval stands.
func (s *RentalService) ApproveRental(ctx context.Context, id, callerID int) (models.Rental, error) {
	rental, space, err := s.setStatus(ctx, id, callerID, models.RentalApproved)
	if err != nil {
		return models.Rental{}, err
	}
	if rental.Email == "" {
		s.Logger.Infof("rental %d approved without a requester email", id)
		return rental, nil
	}

	msg := models.EmailMessage{
		To:      rental.Email,
		Subject: approvalSubject,
		Body:    fmt.Sprintf(approvalBody, space.Name, rental.StartDate, rental.EndDate, rental.CustomPrice),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		s.Logger.Errorf("approval email for rental %d: %v", id, err)
	}
	return rental, nil
}

func (s *RentalService) RejectRental(ctx context.Context, id, callerID int) (models.Rental, error) {
	rental, _, err := s.setStatus(ctx, id, callerID, models.RentalRejected)
	return rental, err
}

// DeleteRental is allowed for the space owner and for the requester.
func (s *RentalService) DeleteRental(ctx context.Context, id, callerID int) error {
	rental, err := s.RentalRepo.GetRentalByID(ctx, id)
	if err != nil {
		return err
	}
	if callerID != 0 && rental.UserID != strconv.Itoa(callerID) {
		space, err := s.SpaceRepo.GetSpaceByID(ctx, rental.SpaceID)
		if err != nil {
			return err
		}
		if err := checkOwner(space, callerID); err != nil {
			return err
		}
	}
	return s.RentalRepo.DeleteRental(ctx, id)
}

// setStatus never touches the capacity of the space; owners adjust that
// separately through an availability update.
func (s *RentalService) setStatus(ctx context.Context, id, callerID int, status models.RentalStatus) (models.Rental, models.Space, error) {
	rental, err := s.RentalRepo.GetRentalByID(ctx, id)
	if err != nil {
		return models.Rental{}, models.Space{}, err
	}
	space, err := s.SpaceRepo.GetSpaceByID(ctx, rental.SpaceID)
	if err != nil {
		return models.Rental{}, models.Space{}, err
	}
	if err := checkOwner(space, callerID); err != nil {
		return models.Rental{}, models.Space{}, err
	}
	if err := s.RentalRepo.UpdateStatus(ctx, id, status); err != nil {
		return models.Rental{}, models.Space{}, err
	}
	rental.RentalApproval = status
	return rental, space, nil
}
