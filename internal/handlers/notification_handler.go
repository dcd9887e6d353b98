package handlers

import (
	"net/http"

	"sharedesk/internal/models"
	"sharedesk/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
	Logger  Logger
}

// GetNotify serves GET /api/Notification/Notify?spaceId=&userId=.
func (h *NotificationHandler) GetNotify(w http.ResponseWriter, r *http.Request) {
	spaceID, err := intParam(r, "spaceId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	on, err := h.Service.IsSubscribed(r.Context(), spaceID, r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, h.Logger, "get notification preference", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"notify": on})
}

func (h *NotificationHandler) SetNotify(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if _, err := h.Service.Subscribe(r.Context(), req.Preference()); err != nil {
		writeServiceError(w, h.Logger, "set notification preference", err)
		return
	}
	writeMessage(w, http.StatusOK, "Notification preference set")
}

func (h *NotificationHandler) RemoveNotify(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	pref := req.Preference()
	if err := h.Service.Unsubscribe(r.Context(), pref.SpaceID, pref.UserID); err != nil {
		writeServiceError(w, h.Logger, "remove notification preference", err)
		return
	}
	writeMessage(w, http.StatusOK, "Notification preference removed")
}

func (h *NotificationHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.SpaceID <= 0 {
		writeMessage(w, http.StatusBadRequest, "missing spaceId")
		return
	}
	res, err := h.Service.UpdateAvailability(r.Context(), int(req.SpaceID), int(req.NewCapacity), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.Logger, "update availability", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
