package webhook

import (
	"encoding/json"
	"testing"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRequest_MessageEvent(t *testing.T) {
	payload := `{
		"event": "room_message",
		"item": {
			"room": {"id": 42, "name": "Lobby"},
			"message": {"from": {"id": 7, "name": "Guesty"}}
		}
	}`

	var req EventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	event, err := req.toRoomEvent()
	require.NoError(t, err)
	assert.Equal(t, model.EventRoomMessage, event.Event)
	assert.Equal(t, "42", event.Room.ID)
	assert.Equal(t, "Lobby", event.Room.Name)
	assert.Equal(t, "7", event.SenderID)
}

func TestEventRequest_EnterEvent(t *testing.T) {
	payload := `{
		"event": "room_enter",
		"item": {
			"room": {"id": "42", "name": "Lobby"},
			"sender": {"id": "7", "name": "Guesty"}
		}
	}`

	var req EventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	event, err := req.toRoomEvent()
	require.NoError(t, err)
	assert.Equal(t, model.EventRoomEnter, event.Event)
	assert.Equal(t, "7", event.SenderID)
}

func TestEventRequest_MissingSender(t *testing.T) {
	payload := `{
		"event": "room_message",
		"item": {"room": {"id": 42, "name": "Lobby"}}
	}`

	var req EventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	_, err := req.toRoomEvent()
	assert.ErrorIs(t, err, errMissingSender)
}

func TestEventRequest_MissingRoom(t *testing.T) {
	payload := `{
		"event": "room_enter",
		"item": {"sender": {"id": 7}}
	}`

	var req EventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	_, err := req.toRoomEvent()
	assert.ErrorIs(t, err, errMissingRoom)
}
