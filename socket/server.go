package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server used for notification
// push. Attendees emit "join" with their userId right after connecting and
// receive "notification" events in that room.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("Socket connected:", s.ID())
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, userID string) {
		if userID == "" {
			log.Println("Invalid userId in join request")
			return
		}
		log.Printf("Socket %s joined room %s", s.ID(), userID)
		s.Join(userID)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Printf("Socket error: %v", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return server
}
