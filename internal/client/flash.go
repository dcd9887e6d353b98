package client

import (
	"context"
	"strings"
	"time"

	"sharedesk/internal/models"
	"sharedesk/internal/pricing"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Flash is the one-line status shown after a page action.
type Flash struct {
	Message  string
	Severity Severity
}

// SeverityOf classifies a message by its wording. "Notification disabled"
// therefore reads as an error, as it always has on the details page.
func SeverityOf(message string) Severity {
	if strings.Contains(message, "successfully") || strings.Contains(message, "enabled") {
		return SeveritySuccess
	}
	return SeverityError
}

func flash(message string) Flash {
	return Flash{Message: message, Severity: SeverityOf(message)}
}

// PendingCount counts the rentals still waiting for the owner.
func PendingCount(rentals []models.Rental) int {
	n := 0
	for _, r := range rentals {
		if r.RentalApproval == models.RentalPending {
			n++
		}
	}
	return n
}

// Details drives the actions of a space details page for one viewer.
type Details struct {
	Client  *Client
	SpaceID int
	UserID  string
	Email   string
}

// Save stores the edited space and then its available capacity, which may
// notify subscribers. Both outcomes are reported.
func (d *Details) Save(ctx context.Context, space models.Space) []Flash {
	space.ID = d.SpaceID
	var out []Flash
	if _, err := d.Client.UpdateSpace(ctx, space); err != nil {
		out = append(out, flash("Failed to update space details"))
	} else {
		out = append(out, flash("Space details updated successfully"))
	}
	if _, err := d.Client.UpdateAvailability(ctx, d.SpaceID, space.AvailableCapacity); err != nil {
		out = append(out, flash("Failed to update available capacity and send notifications"))
	} else {
		out = append(out, flash("Available capacity updated successfully"))
	}
	return out
}

func (d *Details) ToggleNotify(ctx context.Context, checked bool) Flash {
	if err := d.Client.SetNotify(ctx, d.SpaceID, d.UserID, d.Email, checked); err != nil {
		return flash("Failed to update notification preference")
	}
	if checked {
		return flash("Notification enabled")
	}
	return flash("Notification disabled")
}

// Quote prices a custom period the way the confirmation dialog does.
func (d *Details) Quote(space models.Space, start, end time.Time) (float64, error) {
	return pricing.CustomPrice(space.Price, start, end)
}

func (d *Details) RequestRental(ctx context.Context, start, end models.Date, price float64) Flash {
	rental := models.Rental{
		SpaceID:     d.SpaceID,
		UserID:      d.UserID,
		Email:       d.Email,
		StartDate:   start,
		EndDate:     end,
		CustomPrice: price,
	}
	if _, err := d.Client.CreateRental(ctx, rental); err != nil {
		return flash("Failed to add rental")
	}
	return flash("Rental added successfully")
}

func (d *Details) Rentals(ctx context.Context) ([]models.Rental, error) {
	return d.Client.GetRentals(ctx, models.RentalFilter{SpaceID: d.SpaceID})
}

func (d *Details) Approve(ctx context.Context, rentalID int) Flash {
	if err := d.Client.ApproveRental(ctx, rentalID); err != nil {
		return flash("Failed to approve rental")
	}
	return flash("Rental approved successfully and email sent to the user.")
}

func (d *Details) Reject(ctx context.Context, rentalID int) Flash {
	if err := d.Client.RejectRental(ctx, rentalID); err != nil {
		return flash("Failed to reject rental")
	}
	return flash("Rental rejected successfully")
}

func (d *Details) Delete(ctx context.Context, rentalID int) Flash {
	if err := d.Client.DeleteRental(ctx, rentalID); err != nil {
		return flash("Failed to delete rental")
	}
	return flash("Rental deleted successfully")
}
