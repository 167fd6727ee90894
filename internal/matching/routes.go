package matching

import (
	"github.com/gorilla/mux"

	"github.com/greensweep/backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	vol := api.NewRoute().Subrouter()
	vol.Use(authMiddleware.RequireRole(auth.RoleVolunteer, auth.RoleAdmin))
	vol.HandleFunc("/opportunities", handler.MatchOpportunities).Methods("GET")

	org := api.NewRoute().Subrouter()
	org.Use(authMiddleware.RequireRole(auth.RoleOrganization, auth.RoleAdmin))
	org.HandleFunc("/opportunities/{id}/volunteers", handler.MatchVolunteers).Methods("GET")
}
