package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterAttendeeRoutes registers all attendee routes under /api/attendees
func RegisterAttendeeRoutes(router *mux.Router, directory *services.DirectoryService) {
	controller := &controllers.AttendeeController{Directory: directory}

	attendeeRouter := router.PathPrefix("/api/attendees").Subrouter()
	attendeeRouter.HandleFunc("", controller.CreateAttendeeProfile).Methods("POST")
	attendeeRouter.HandleFunc("/{userId}", controller.GetAttendeeProfile).Methods("GET")
	attendeeRouter.HandleFunc("/{userId}/checkin", controller.SetCheckedIn).Methods("PUT")
}
