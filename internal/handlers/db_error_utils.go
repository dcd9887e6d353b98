package handlers

import (
	"errors"
	"net/http"
	"strings"

	"sharedesk/internal/models"
	"sharedesk/internal/repositories"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// errorResponse maps a service error to a status and a client-facing message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrSpaceNotFound):
		return http.StatusNotFound, "Space not found"
	case errors.Is(err, models.ErrRentalNotFound):
		return http.StatusNotFound, "Rental not found"
	case errors.Is(err, models.ErrPreferenceNotFound):
		return http.StatusNotFound, "Notification preference not found"
	case errors.Is(err, models.ErrImageNotFound):
		return http.StatusNotFound, "Image not found"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "Only the owner of the space may do this"
	case models.IsValidation(err):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), "models: ")
	case errors.Is(err, models.ErrDuplicatePreference), repositories.IsUniqueViolation(err):
		return http.StatusConflict, "Record already exists"
	case repositories.IsForeignKeyViolation(err):
		return http.StatusBadRequest, "Referenced record does not exist"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// writeServiceError answers with the mapped status and logs unexpected failures.
func writeServiceError(w http.ResponseWriter, logger Logger, op string, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("%s: %v", op, err)
	}
	writeMessage(w, status, msg)
}
