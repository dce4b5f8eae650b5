package model

// RoomIdentity is the minimal room context carried through tokens and events.
// IDs are kept as strings even when the platform sends numbers; they are only
// ever used as opaque key material.
type RoomIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
