package model

import "time"

// Tenant is one installation of the integration into a chat deployment.
// The chat platform posts this payload to the install callback; everything
// the service stores afterwards is namespaced by ClientKey.
type Tenant struct {
	ClientKey   string    `json:"clientKey"`
	OAuthSecret string    `json:"oauthSecret"`
	APIBaseURL  string    `json:"apiBaseUrl"`
	GroupID     string    `json:"groupId,omitempty"`
	RoomID      string    `json:"roomId,omitempty"`
	InstalledAt time.Time `json:"installedAt"`
}
