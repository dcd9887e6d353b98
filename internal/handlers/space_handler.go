package handlers

import (
	"net/http"
	"strconv"

	"sharedesk/internal/browse"
	"sharedesk/internal/models"
	"sharedesk/internal/services"
)

const (
	maxUploadMemory = 32 << 20
	maxPageSize     = 60
)

type SpaceHandler struct {
	Service *services.SpaceService
	Logger  Logger
}

func (h *SpaceHandler) GetSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Service.GetSpaces(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "get spaces", err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

// Browse serves GET /api/Space/Browse?search=&sort=&page=&pageSize=.
func (h *SpaceHandler) Browse(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := optionalInt(r, "pageSize")
	if err != nil || size < 0 || size > maxPageSize {
		writeMessage(w, http.StatusBadRequest, "invalid pageSize")
		return
	}

	q := browse.Query{
		Search:   r.URL.Query().Get("search"),
		Sort:     browse.SortKey(r.URL.Query().Get("sort")),
		Page:     page,
		PageSize: size,
	}
	result, err := h.Service.Browse(r.Context(), q)
	if err != nil {
		writeServiceError(w, h.Logger, "browse spaces", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *SpaceHandler) GetSpaceByID(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	space, err := h.Service.GetSpaceByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "get space", err)
		return
	}
	writeJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) GetSpacesByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := intParam(r, "userId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	spaces, err := h.Service.GetSpacesByOwner(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, h.Logger, "get owner spaces", err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

func (h *SpaceHandler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var in models.SpaceInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	space := in.ToSpace(0)
	if caller := UserIDFromContext(r.Context()); caller != 0 {
		space.RenterUserID = caller
	}

	created, err := h.Service.CreateSpace(r.Context(), space)
	if err != nil {
		writeServiceError(w, h.Logger, "create space", err)
		return
	}
	w.Header().Set("Location", "/api/Space/"+strconv.Itoa(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *SpaceHandler) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var in models.SpaceInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.Service.UpdateSpace(r.Context(), in.ToSpace(id), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.Logger, "update space", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SpaceHandler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.DeleteSpace(r.Context(), id, UserIDFromContext(r.Context())); err != nil {
		writeServiceError(w, h.Logger, "delete space", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SpaceHandler) GetImages(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	images, err := h.Service.GetImages(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "get space images", err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// UploadImages accepts multipart files under the "images" field.
func (h *SpaceHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := collectImageFiles(r.MultipartForm, "images", "image")
	if len(files) == 0 {
		writeMessage(w, http.StatusBadRequest, "No images uploaded")
		return
	}

	saved := make([]models.SpaceImage, 0, len(files))
	for _, fh := range files {
		data, err := readImageFile(fh, services.MaxImageSize)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Failed to read "+fh.Filename)
			return
		}
		img, err := h.Service.AddImage(r.Context(), id, data)
		if err != nil {
			writeServiceError(w, h.Logger, "upload space image", err)
			return
		}
		saved = append(saved, img)
	}
	writeJSON(w, http.StatusCreated, saved)
}
