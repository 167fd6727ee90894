package application

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
	"github.com/greensweep/backend/internal/common/utils"
	"github.com/greensweep/backend/internal/opportunity"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto ApplyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := h.service.Apply(r.Context(), volunteerID, &dto)
	if err != nil {
		switch {
		case errors.Is(err, opportunity.ErrOpportunityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyApplied):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrOpportunityClosed):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit application")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, app)
}

func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)

	var dto RespondDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := h.service.Respond(r.Context(), vars["id"], organizationID, dto.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound), errors.Is(err, opportunity.ErrOpportunityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to respond to application")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, app)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)

	app, err := h.service.Withdraw(r.Context(), vars["id"], volunteerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotApplicant):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to withdraw application")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, app)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := h.service.ListForVolunteer(r.Context(), volunteerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, apps)
}

func (h *Handler) ListForOpportunity(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)

	apps, err := h.service.ListForOpportunity(r.Context(), vars["opportunityId"], organizationID)
	if err != nil {
		switch {
		case errors.Is(err, opportunity.ErrOpportunityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list applications")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, apps)
}
