package services

import (
	"log"

	"mingle_server/models"
)

// Notifier delivers a notification to one attendee. Delivery is
// fire-and-forget: implementations log failures and never propagate them,
// so a dead push channel cannot abort a state transition.
type Notifier interface {
	Notify(userID string, payload models.NotificationPayload)
}

// Broadcaster is the slice of the socket.io server the notifier needs
type Broadcaster interface {
	BroadcastToRoom(namespace string, room string, event string, args ...interface{}) bool
}

// SocketNotifier pushes notifications to the user's socket.io room.
// Attendees join a room named by their userId on connect.
type SocketNotifier struct {
	Server Broadcaster
}

func (n *SocketNotifier) Notify(userID string, payload models.NotificationPayload) {
	if userID == "" {
		return
	}
	delivered := n.Server.BroadcastToRoom("/", userID, "notification", payload)
	if !delivered {
		log.Printf("Notification to %s not delivered (no live socket): %s", userID, payload.Type)
	}
}

// LogNotifier writes notifications to the log. Used when the socket server
// is not running (local tools, tests).
type LogNotifier struct{}

func (LogNotifier) Notify(userID string, payload models.NotificationPayload) {
	log.Printf("Notify %s [%s]: %s / %s", userID, payload.Type, payload.Title, payload.Body)
}
