package model

// Room event names as the chat platform sends them.
const (
	EventRoomMessage = "room_message"
	EventRoomEnter   = "room_enter"
)

// RoomEvent is an inbound webhook event normalized by the presentation layer:
// the platform reports the sender under different fields for message and
// enter events, so controllers flatten both into SenderID.
type RoomEvent struct {
	Event    string
	Room     RoomIdentity
	SenderID string
}

// HookType maps the event to the flag/hook that governs it.
func (e *RoomEvent) HookType() HookType {
	if e.Event == EventRoomMessage {
		return HookHistory
	}
	return HookGreeting
}
