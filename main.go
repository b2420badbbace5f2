package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"mingle_server/routes"
	"mingle_server/services"
	"mingle_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and stores
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	gatheringStore := &services.DynamoGatheringStore{Dynamo: dynamoService}
	invitationStore := &services.DynamoInvitationStore{Dynamo: dynamoService}
	log.Println("DynamoDB client initialized.")

	// Socket.IO server doubles as the notification push channel
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()

	notifier := &services.SocketNotifier{Server: socketServer}

	// Initialize Services
	directoryService := &services.DirectoryService{Dynamo: dynamoService}
	targetingService := &services.TargetingService{}
	scoringService := &services.ScoringService{Availability: directoryService}
	invitationService := services.NewInvitationService(invitationStore, notifier)
	scheduler := services.NewScheduler()
	lifecycleService := services.NewLifecycleService(
		gatheringStore,
		invitationStore,
		directoryService,
		targetingService,
		scoringService,
		invitationService,
		notifier,
		scheduler,
		services.DefaultLifecycleConfig(),
	)
	mediaService := services.NewMediaService()

	// Resume ticking gatherings that were in flight before the restart
	if err := lifecycleService.RestoreGatherings(context.Background()); err != nil {
		log.Printf("Failed to restore gatherings: %v", err)
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Mingle")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterGatheringRoutes(r, lifecycleService)
	routes.RegisterInvitationRoutes(r, lifecycleService, invitationStore)
	routes.RegisterAttendeeRoutes(r, directoryService)
	routes.RegisterMediaRoutes(r, mediaService)
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
