package models

// NotificationAction is a tappable action attached to a notification
type NotificationAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NotificationPayload is the fire-and-forget message handed to the notifier
type NotificationPayload struct {
	Type    string               `json:"type"`
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	Data    map[string]string    `json:"data,omitempty"`
	Actions []NotificationAction `json:"actions,omitempty"`
}
