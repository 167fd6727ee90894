package volunteer

import (
	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/volunteers").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/me/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/me/profile", handler.UpsertMyProfile).Methods("PUT")
	api.HandleFunc("/{id}/profile", handler.GetProfile).Methods("GET")
}
