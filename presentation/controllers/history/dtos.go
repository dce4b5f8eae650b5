package history

import "encoding/json"

type RoomContextResponse struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
}

type LatestHistoryResponse struct {
	RoomName string            `json:"room_name"`
	Items    []MessageResponse `json:"items"`
}

// MessageResponse mirrors the platform's history entry; From keeps its raw
// shape since the platform sends either an object or a plain string.
type MessageResponse struct {
	ID      string          `json:"id"`
	From    json.RawMessage `json:"from"`
	Message string          `json:"message"`
	Date    string          `json:"date"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
