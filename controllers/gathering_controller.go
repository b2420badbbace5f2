package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"mingle_server/models"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// GatheringController handles HTTP requests for gatherings
type GatheringController struct {
	Lifecycle *services.LifecycleService
}

// CreateGathering handles POST /api/gatherings
func (c *GatheringController) CreateGathering(w http.ResponseWriter, r *http.Request) {
	var req models.GatheringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	gathering, err := c.Lifecycle.CreateGathering(r.Context(), req)
	if err != nil {
		log.Printf("Failed to create gathering: %v", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gathering)
}

// GetGathering handles GET /api/gatherings/{gatheringId}
func (c *GatheringController) GetGathering(w http.ResponseWriter, r *http.Request) {
	gatheringID := mux.Vars(r)["gatheringId"]

	gathering, err := c.Lifecycle.GetGathering(r.Context(), gatheringID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gathering)
}

// ListGatherings handles GET /api/gatherings
func (c *GatheringController) ListGatherings(w http.ResponseWriter, r *http.Request) {
	gatherings, err := c.Lifecycle.ListGatherings(r.Context())
	if err != nil {
		log.Printf("Failed to list gatherings: %v", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gatherings)
}

// CompleteGathering handles POST /api/gatherings/{gatheringId}/complete
func (c *GatheringController) CompleteGathering(w http.ResponseWriter, r *http.Request) {
	gatheringID := mux.Vars(r)["gatheringId"]

	gathering, err := c.Lifecycle.CompleteGathering(r.Context(), gatheringID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gathering)
}
