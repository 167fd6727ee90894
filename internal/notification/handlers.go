package notification

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
	"github.com/greensweep/backend/internal/common/utils"
)

type Handler struct {
	service Service
	hub     *Hub
}

func NewHandler(service Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.service.ListForUser(r.Context(), userID, unreadOnly)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, notifications)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)

	if err := h.service.MarkRead(r.Context(), vars["id"], userID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark notification read")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Notification marked read")
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
