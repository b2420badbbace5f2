package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"mingle_server/models"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// AttendeeController handles requests related to attendee profiles
type AttendeeController struct {
	Directory *services.DirectoryService
}

// CreateAttendeeProfile handles POST /api/attendees
func (c *AttendeeController) CreateAttendeeProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.AttendeeProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if profile.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	created, err := c.Directory.AddAttendeeProfile(r.Context(), profile)
	if err != nil {
		log.Printf("Failed to save attendee profile: %v", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetAttendeeProfile handles GET /api/attendees/{userId}
func (c *AttendeeController) GetAttendeeProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.Directory.GetAttendeeProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// SetCheckedIn handles PUT /api/attendees/{userId}/checkin
func (c *AttendeeController) SetCheckedIn(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var payload struct {
		CheckedIn bool `json:"checkedIn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := c.Directory.SetCheckedIn(r.Context(), userID, payload.CheckedIn); err != nil {
		log.Printf("Failed to update check-in for %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]bool{"checkedIn": payload.CheckedIn})
}
