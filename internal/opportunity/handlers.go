package opportunity

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
	"github.com/greensweep/backend/internal/common/utils"
)

const maxPhotoSize = 10 << 20 // 10 MB

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto CreateOpportunityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	opp, err := h.service.Create(r.Context(), organizationID, &dto)
	if err != nil {
		if errors.Is(err, ErrPastEventDate) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create opportunity")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, opp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	opp, err := h.service.GetByID(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, ErrOpportunityNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get opportunity")
		return
	}

	utils.RespondWithData(w, http.StatusOK, opp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
	}

	if r.URL.Query().Get("upcoming") == "true" {
		now := time.Now()
		filter.MinDate = &now
	}

	if r.URL.Query().Get("mine") == "true" {
		if organizationID, ok := auth.GetUserIDFromContext(r.Context()); ok {
			filter.OrganizationID = organizationID
		}
	}

	opps, err := h.service.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list opportunities")
		return
	}

	utils.RespondWithData(w, http.StatusOK, opps)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateStatus(r.Context(), vars["id"], organizationID, dto.Status); err != nil {
		switch {
		case errors.Is(err, ErrOpportunityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Status updated")
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadPhoto(r.Context(), vars["id"], organizationID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, ErrOpportunityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload photo")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]string{"photo_url": url})
}
