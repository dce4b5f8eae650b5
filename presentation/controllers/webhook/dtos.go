package webhook

import (
	"encoding/json"
	"errors"
)

var (
	errMissingSender = errors.New("event has no sender")
	errMissingRoom   = errors.New("event has no room")
)

// EventRequest is the platform's webhook payload. Numeric ids arrive as JSON
// numbers, so they stay json.Number until flattened to strings.
type EventRequest struct {
	Event string `json:"event"`
	Item  struct {
		Room    RoomRef  `json:"room"`
		Sender  *UserRef `json:"sender"`
		Message *struct {
			From *UserRef `json:"from"`
		} `json:"message"`
	} `json:"item"`
}

type RoomRef struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type UserRef struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
