package realtime

import "pethealth/internal/domain"

// Frame is the wire format for every message on the channel, both
// directions: {"event": "...", "data": {...}}.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

const (
	EventPing = "ping"
	EventPong = "pong"
)

// EventName maps a notification kind to its wire event name.
func EventName(t domain.NotificationType) string {
	return "notification:" + string(t)
}
