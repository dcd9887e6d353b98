package handlers

import (
	"net/http"

	"sharedesk/internal/models"
	"sharedesk/internal/services"
)

type RentalHandler struct {
	Service *services.RentalService
	Logger  Logger
}

// GetRentals serves GET /api/Rental/GetRentals?spaceId=&userId=&status=.
func (h *RentalHandler) GetRentals(w http.ResponseWriter, r *http.Request) {
	spaceID, err := optionalInt(r, "spaceId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	filter := models.RentalFilter{
		SpaceID: spaceID,
		UserID:  r.URL.Query().Get("userId"),
		Status:  models.RentalStatus(r.URL.Query().Get("status")),
	}
	rentals, err := h.Service.GetRentals(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.Logger, "get rentals", err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req models.RentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	rental, err := h.Service.CreateRental(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.Logger, "create rental", err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) ApproveRental(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	rental, err := h.Service.ApproveRental(r.Context(), id, UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.Logger, "approve rental", err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) RejectRental(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	rental, err := h.Service.RejectRental(r.Context(), id, UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.Logger, "reject rental", err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.DeleteRental(r.Context(), id, UserIDFromContext(r.Context())); err != nil {
		writeServiceError(w, h.Logger, "delete rental", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
