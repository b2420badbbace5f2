package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up routes for presigned media URLs
func RegisterMediaRoutes(r *mux.Router, media *services.MediaService) {
	controller := &controllers.MediaController{Media: media}

	r.HandleFunc("/generate-presigned-url", controller.GeneratePresignedURL).Methods("POST")
	r.HandleFunc("/get-presigned-read-url", controller.GetPresignedReadURL).Methods("POST")
}
