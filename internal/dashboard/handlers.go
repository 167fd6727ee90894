package dashboard

import (
	"net/http"

	"github.com/greensweep/backend/internal/auth"
	"github.com/greensweep/backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) VolunteerDashboard(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.service.VolunteerStats(r.Context(), volunteerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	utils.RespondWithData(w, http.StatusOK, stats)
}

func (h *Handler) OrganizationDashboard(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.service.OrganizationStats(r.Context(), organizationID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	utils.RespondWithData(w, http.StatusOK, stats)
}
