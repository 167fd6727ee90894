package dashboard

import (
	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/dashboard").Subrouter()
	api.Use(authMiddleware.Authenticate)

	vol := api.NewRoute().Subrouter()
	vol.Use(authMiddleware.RequireRole(auth.RoleVolunteer, auth.RoleAdmin))
	vol.HandleFunc("/volunteer", handler.VolunteerDashboard).Methods("GET")

	org := api.NewRoute().Subrouter()
	org.Use(authMiddleware.RequireRole(auth.RoleOrganization, auth.RoleAdmin))
	org.HandleFunc("/organization", handler.OrganizationDashboard).Methods("GET")
}
