package lifecycle

import "encoding/json"

// InstallRequest is the platform's install callback body. The oauthId doubles
// as the tenant's client key everywhere downstream.
type InstallRequest struct {
	OAuthID     string      `json:"oauthId" binding:"required"`
	OAuthSecret string      `json:"oauthSecret" binding:"required"`
	APIBaseURL  string      `json:"apiUrl" binding:"required"`
	GroupID     json.Number `json:"groupId"`
	RoomID      json.Number `json:"roomId"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
