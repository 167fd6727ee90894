package application

import (
	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/applications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Volunteer side
	vol := api.NewRoute().Subrouter()
	vol.Use(authMiddleware.RequireRole(auth.RoleVolunteer, auth.RoleAdmin))
	vol.HandleFunc("", handler.Apply).Methods("POST")
	vol.HandleFunc("", handler.ListMine).Methods("GET")
	vol.HandleFunc("/{id}/withdraw", handler.Withdraw).Methods("POST")

	// Organization side
	org := api.NewRoute().Subrouter()
	org.Use(authMiddleware.RequireRole(auth.RoleOrganization, auth.RoleAdmin))
	org.HandleFunc("/{id}/respond", handler.Respond).Methods("POST")
	org.HandleFunc("/opportunity/{opportunityId}", handler.ListForOpportunity).Methods("GET")
}
