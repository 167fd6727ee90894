package notification

import (
	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.List).Methods("GET")
	api.HandleFunc("/{id}/read", handler.MarkRead).Methods("POST")
	api.HandleFunc("/ws", handler.ServeWS).Methods("GET")
}
