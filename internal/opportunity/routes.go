package opportunity

import (
	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/opportunities").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.List).Methods("GET")
	api.HandleFunc("/{id}", handler.Get).Methods("GET")

	// Organization-only operations
	org := api.NewRoute().Subrouter()
	org.Use(authMiddleware.RequireRole(auth.RoleOrganization, auth.RoleAdmin))
	org.HandleFunc("", handler.Create).Methods("POST")
	org.HandleFunc("/{id}/status", handler.UpdateStatus).Methods("PUT")
	org.HandleFunc("/{id}/photo", handler.UploadPhoto).Methods("POST")
}
