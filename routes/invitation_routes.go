package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterInvitationRoutes registers all invitation routes under /api/invitations
func RegisterInvitationRoutes(router *mux.Router, lifecycle *services.LifecycleService, invitations services.InvitationStore) {
	controller := &controllers.InvitationController{Lifecycle: lifecycle, Invitations: invitations}

	invitationRouter := router.PathPrefix("/api/invitations").Subrouter()
	invitationRouter.HandleFunc("/{invitationId}/responses", controller.RespondToInvitation).Methods("POST")
	invitationRouter.HandleFunc("/pending/{userId}", controller.GetPendingInvitations).Methods("GET")
}
