package matching

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
	"github.com/greensweep/backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MatchOpportunities returns ranked opportunities for the authenticated
// volunteer.
func (h *Handler) MatchOpportunities(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.MatchOpportunitiesForVolunteer(r.Context(), volunteerID, parseLimit(r))
	if err != nil {
		if errors.Is(err, ErrVolunteerNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

// MatchVolunteers returns ranked volunteer candidates for an opportunity.
func (h *Handler) MatchVolunteers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	matches, err := h.service.MatchVolunteersForOpportunity(r.Context(), vars["id"], parseLimit(r))
	if err != nil {
		if errors.Is(err, ErrOpportunityNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
