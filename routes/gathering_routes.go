package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterGatheringRoutes registers all gathering routes under /api/gatherings
func RegisterGatheringRoutes(router *mux.Router, lifecycle *services.LifecycleService) {
	controller := &controllers.GatheringController{Lifecycle: lifecycle}

	gatheringRouter := router.PathPrefix("/api/gatherings").Subrouter()
	gatheringRouter.HandleFunc("", controller.CreateGathering).Methods("POST")
	gatheringRouter.HandleFunc("", controller.ListGatherings).Methods("GET")
	gatheringRouter.HandleFunc("/{gatheringId}", controller.GetGathering).Methods("GET")
	gatheringRouter.HandleFunc("/{gatheringId}/complete", controller.CompleteGathering).Methods("POST")
}
