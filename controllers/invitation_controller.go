package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"mingle_server/models"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// InvitationController handles HTTP requests for invitations
type InvitationController struct {
	Lifecycle   *services.LifecycleService
	Invitations services.InvitationStore
}

// RespondToInvitation handles POST /api/invitations/{invitationId}/responses
func (c *InvitationController) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := mux.Vars(r)["invitationId"]

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	invitation, gathering, err := c.Lifecycle.ProcessInvitationResponse(r.Context(), invitationID, payload.Response)
	if err != nil {
		log.Printf("Failed to process response for invitation %s: %v", invitationID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"invitation": invitation,
		"gathering":  gathering,
	})
}

// GetPendingInvitations handles GET /api/invitations/pending/{userId}
func (c *InvitationController) GetPendingInvitations(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	invitations, err := c.Invitations.ListPendingInvitationsByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to fetch pending invitations for %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invitations)
}
